// Package simpletxmanager менеджер транзакций поверх чистого *sql.DB,
// используется когда метрики выключены. Семантика идентична pkg/txmanager,
// включая повторы SERIALIZABLE транзакций и сигнальную ошибку
// txmanager.ErrSerializationFailure.
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/voltspot/EVC-BookingService/pkg/dbmetrics"
	"github.com/voltspot/EVC-BookingService/pkg/txmanager"
)

const (
	maxSerializableRetries = 3

	retryBackoff = 25 * time.Millisecond
)

// TransactionManager менеджер транзакций без метрик
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с изоляцией по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции с повторами
// при serialization failure
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		err = m.run(ctx, opts, fn)
		if !txmanager.IsSerializationFailure(err) {
			return err
		}
	}

	return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", txmanager.ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	// Обёртка сохраняет цепочку ошибок: serialization failure на COMMIT
	// должен распознаваться IsSerializationFailure для повтора
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", txmanager.ErrCommitTx, err)
	}

	return nil
}

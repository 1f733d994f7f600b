// Package txmanager управление транзакциями поверх обёрнутого метриками подключения.
// Read-decide-write последовательности бронирований выполняются через DoSerializable:
// SERIALIZABLE изоляция + ограниченное число повторов при serialization failure
// закрывают гонку "двое прочитали свободный слот и оба записали".
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/voltspot/EVC-BookingService/pkg/dbmetrics"
)

const (
	// maxSerializableRetries максимальное число повторов при serialization failure
	maxSerializableRetries = 3

	retryBackoff = 25 * time.Millisecond
)

var (
	// ErrSerializationFailure возвращается, когда транзакция не смогла выполниться
	// из-за конкурентного доступа даже после всех повторов.
	// Вызывающий слой трактует это как конфликт бронирования, а не как сбой.
	ErrSerializationFailure = errors.New("txmanager: serialization failure after retries")

	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке коммита транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
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

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При serialization failure (SQLSTATE 40001) или deadlock (40P01) повторяет
// транзакцию целиком, до maxSerializableRetries раз.
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
		if !IsSerializationFailure(err) {
			return err
		}
	}

	return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	// Serialization failure чаще всего проявляется именно на COMMIT,
	// поэтому обёртка обязана сохранять цепочку ошибок для IsSerializationFailure
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationFailure проверяет, является ли ошибка serialization failure
// или deadlock постгреса (в обоих случаях транзакцию безопасно повторить)
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltspot/EVC-BookingService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr error
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error   { return t.commitErr }
func (t *fakeTx) Rollback() error { return nil }

type fakeTxBeginner struct {
	begun     int
	commitErr func(attempt int) error
}

func (b *fakeTxBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return &fakeTx{commitErr: b.commitErr(b.begun)}, nil
}

func serializationErr() *pq.Error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("plain error")))
	assert.False(t, IsSerializationFailure(nil))
}

func TestIsSerializationFailure_WrappedChains(t *testing.T) {
	pqErr := serializationErr()

	// Обёртка уровня репозитория не должна терять *pq.Error
	repoWrapped := fmt.Errorf("%w: GetByStationWithFilter - execute query: %w",
		errors.New("booking.repository: failed to execute query"), pqErr)
	assert.True(t, IsSerializationFailure(repoWrapped))

	// Обёртка коммита тоже: под SERIALIZABLE конфликт чаще всего
	// проявляется именно на COMMIT
	commitWrapped := fmt.Errorf("%w: %w", ErrCommitTx, pqErr)
	assert.True(t, IsSerializationFailure(commitWrapped))

	// Двойная обёртка (usecase поверх репозитория)
	doubleWrapped := fmt.Errorf("%w: failed to get bookings: %w",
		errors.New("create_booking: internal error"), repoWrapped)
	assert.True(t, IsSerializationFailure(doubleWrapped))
}

func TestDoSerializable_RetriesCommitConflict(t *testing.T) {
	// Первые две попытки падают на COMMIT с serialization failure,
	// третья проходит
	db := &fakeTxBeginner{
		commitErr: func(attempt int) error {
			if attempt < 3 {
				return serializationErr()
			}
			return nil
		},
	}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, db.begun)
	assert.Equal(t, 3, calls)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	db := &fakeTxBeginner{
		commitErr: func(attempt int) error {
			return serializationErr()
		},
	}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, maxSerializableRetries, db.begun)
}

func TestDoSerializable_RetriesWrappedQueryConflict(t *testing.T) {
	// Конфликт, обнаруженный на запросе внутри транзакции и обёрнутый
	// репозиторием и usecase'ом, тоже должен вызывать повтор
	db := &fakeTxBeginner{
		commitErr: func(attempt int) error { return nil },
	}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			repoErr := fmt.Errorf("%w: Create - execute insert: %w",
				errors.New("booking.repository: failed to execute query"), serializationErr())
			return fmt.Errorf("%w: failed to create booking: %w",
				errors.New("create_booking: internal error"), repoErr)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_NonRetryableError(t *testing.T) {
	db := &fakeTxBeginner{
		commitErr: func(attempt int) error { return nil },
	}
	m := NewTransactionManager(db)

	boom := errors.New("boom")
	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/mipractice/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func setTier(ctx context.Context, tx db.DBTX, tier string) error {
	_, err := tx.ExecContext(ctx, `UPDATE subscription SET tier = ? WHERE id = 'default'`, tier)
	return err
}

func readTier(t *testing.T, database *sql.DB) string {
	t.Helper()
	var tier string
	require.NoError(t, database.QueryRow(`SELECT tier FROM subscription WHERE id = 'default'`).Scan(&tier))
	return tier
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return setTier(ctx, tx, "premium")
	})
	require.NoError(t, err)

	assert.Equal(t, "premium", readTier(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openTestDB(t)
	errDeliberate := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := setTier(ctx, tx, "premium"); err != nil {
			return err
		}
		return errDeliberate
	})
	require.ErrorIs(t, err, errDeliberate)

	assert.Equal(t, "free", readTier(t, database), "update should be rolled back")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = setTier(ctx, tx, "premium")
			panic("boom")
		})
	})

	assert.Equal(t, "free", readTier(t, database), "update should be rolled back after panic")
}

func TestWithinTx_ConstraintViolationRollsBackEarlierWrites(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := setTier(ctx, tx, "premium"); err != nil {
			return err
		}
		return setTier(ctx, tx, "gold") // violates CHECK
	})
	require.Error(t, err)

	assert.Equal(t, "free", readTier(t, database))
}

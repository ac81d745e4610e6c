package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	driverErr := errors.New("disk I/O error")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, common.ErrorNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), common.ErrorNotFound},
		{"pg unique", &pgconn.PgError{Code: "23505"}, common.ErrDuplicate},
		{"message fallback", errors.New("UNIQUE constraint failed: users.email"), common.ErrDuplicate},
		{"pg duplicate key text", errors.New(`duplicate key value violates unique constraint "users_email_key"`), common.ErrDuplicate},
		{"canceled", context.Canceled, context.Canceled},
		{"other", driverErr, common.ErrStoreUnavailable},
		{"pg other", &pgconn.PgError{Code: "08006"}, common.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := MapError(cause)
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestMapError_SqliteUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `CREATE TABLE t (k TEXT PRIMARY KEY, v TEXT UNIQUE)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO t (k, v) VALUES ('a', 'x')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO t (k, v) VALUES ('b', 'x')`)
	require.Error(t, err)
	assert.ErrorIs(t, MapError(err), common.ErrDuplicate)

	_, err = db.ExecContext(ctx, `INSERT INTO t (k, v) VALUES ('a', 'y')`)
	require.Error(t, err)
	assert.ErrorIs(t, MapError(err), common.ErrDuplicate)
}

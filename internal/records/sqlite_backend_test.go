package records

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/congo-pay/pocketbank/internal/common"
	"github.com/congo-pay/pocketbank/internal/logging"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, MigrateSQLite(context.Background(), db))
	return db
}

func TestSQLiteBackend_GetAbsentReturnsNilNil(t *testing.T) {
	b := NewSQLiteBackend(setupSQLite(t))

	v, err := b.Get(context.Background(), "users")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteBackend_SetOverwrites(t *testing.T) {
	b := NewSQLiteBackend(setupSQLite(t))
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "users", []byte(`[]`)))
	require.NoError(t, b.Set(ctx, "users", []byte(`[{"id":"a"}]`)))

	v, err := b.Get(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"a"}]`, string(v))
}

func TestSQLiteBackend_MigrationIsIdempotent(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, MigrateSQLite(context.Background(), db))
}

func TestSQLiteBackend_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewSQLiteBackend(setupSQLite(t)), "", logging.Discard())

	require.NoError(t, Seed(ctx, s, sampleUser("a")))
	u, err := s.FindByID(ctx, "a")
	require.NoError(t, err)
	require.Len(t, u.Transactions, 1)
	assert.Equal(t, TypeRecharge, u.Transactions[0].Type)
}

func TestSQLiteBackend_DBErrorWrapped(t *testing.T) {
	db := setupSQLite(t)
	b := NewSQLiteBackend(db)
	require.NoError(t, db.Close())

	_, err := b.Get(context.Background(), "k")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to get document[k]")

	err = b.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set document[k]")
}

func TestSQLiteBackend_SaveFailureSurfacesAsStorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT value FROM documents").
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
	mock.ExpectExec("INSERT INTO documents").
		WillReturnError(errors.New("database is locked"))

	s := NewStore(NewSQLiteBackend(db), "users", logging.Discard())
	_, err = s.Update(context.Background(), func(users []UserRecord) ([]UserRecord, error) {
		return append(users, sampleUser("a")), nil
	})
	require.ErrorIs(t, err, common.ErrStorage)
	require.Contains(t, err.Error(), "database is locked")
	require.NoError(t, mock.ExpectationsWereMet())
}

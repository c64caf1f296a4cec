package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metatest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestGet_MissingKeyReturnsNil(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	v, err := repo.Get(context.Background(), "authToken")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetGet_RoundTripAndOverwrite(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "authToken", []byte("tok-1")))

	v, err := repo.Get(ctx, "authToken")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), v)

	// upsert replaces the value
	require.NoError(t, repo.Set(ctx, "authToken", []byte("tok-2")))
	v, err = repo.Get(ctx, "authToken")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-2"), v)
}

func TestDelete_Idempotent(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "authToken", []byte("tok")))
	require.NoError(t, repo.Delete(ctx, "authToken"))

	v, err := repo.Get(ctx, "authToken")
	require.NoError(t, err)
	require.Nil(t, v)

	// deleting an absent key is not an error
	require.NoError(t, repo.Delete(ctx, "authToken"))
}

func TestClear_RemovesEverything(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{"a", "b"} {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

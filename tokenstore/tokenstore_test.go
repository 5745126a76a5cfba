package tokenstore_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/tokenstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// exerciseStore runs the contract every store must honor
func exerciseStore(t *testing.T, store storefront.TokenStore) {
	t.Helper()
	ctx := context.Background()

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Set(ctx, "tok-1"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.Set(ctx, "tok-2"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	require.NoError(t, store.Remove(ctx))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Remove(ctx), "removing twice is not an error")
}

func newSQLiteDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestMemory(t *testing.T) {
	exerciseStore(t, tokenstore.NewMemory())

	seeded := tokenstore.NewMemory("tok-0")
	token, err := seeded.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-0", token)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := tokenstore.NewFile(path)
	assert.Equal(t, path, store.Path())

	exerciseStore(t, store)
}

func TestFile_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := tokenstore.NewFile(path)
	require.NoError(t, store.Set(context.Background(), "tok-1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestDefaultPath(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home directory is not read from HOME")
	}

	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	path, err := tokenstore.DefaultPath("token")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state/storefront/token", path)

	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/ada")
	path, err = tokenstore.DefaultPath("token")
	require.NoError(t, err)
	assert.Equal(t, "/home/ada/.local/state/storefront/token", path)

	t.Setenv("XDG_STATE_HOME", "relative/state")
	path, err = tokenstore.DefaultPath("token")
	require.NoError(t, err)
	assert.Equal(t, "/home/ada/.local/state/storefront/token", path)
}

func TestDefaultPath_NoHome(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home directory is not read from HOME")
	}

	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "")

	path, err := tokenstore.DefaultPath("token")
	require.Error(t, err)
	assert.Empty(t, path)

	_, _, err = tokenstore.Open(context.Background(), tokenstore.Options{Driver: tokenstore.DriverFile})
	require.Error(t, err)
}

func TestSQL(t *testing.T) {
	db := newSQLiteDB(t)
	store := tokenstore.NewSQL(db, "")
	require.NoError(t, store.CreateSchema(context.Background()))
	require.NoError(t, store.CreateSchema(context.Background()), "schema creation is idempotent")

	exerciseStore(t, store)
}

func TestSQL_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)

	a := tokenstore.NewSQL(db, "a")
	b := tokenstore.NewSQL(db, "b")
	require.NoError(t, a.CreateSchema(ctx))

	require.NoError(t, a.Set(ctx, "tok-a"))
	token, err := b.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, b.Set(ctx, "tok-b"))
	require.NoError(t, a.Remove(ctx))

	token, err = b.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-b", token)
}

func TestRedis(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := tokenstore.NewRedis(rdb, "storefront", "", 0)
	assert.Equal(t, "storefront:token", store.Key())

	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), "tok-1"))
	got, err := mr.Get("storefront:token")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	store := tokenstore.NewRedis(rdb, "", "session", time.Minute)
	assert.Equal(t, "session", store.Key())

	require.NoError(t, store.Set(ctx, "tok-1"))
	assert.Equal(t, time.Minute, mr.TTL("session"))

	mr.FastForward(2 * time.Minute)
	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, closeFn, err := tokenstore.Open(ctx, tokenstore.Options{Driver: tokenstore.DriverMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &tokenstore.Memory{}, store)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		store, closeFn, err := tokenstore.Open(ctx, tokenstore.Options{Driver: tokenstore.DriverFile, Path: path})
		require.NoError(t, err)
		defer closeFn()
		require.IsType(t, &tokenstore.File{}, store)
		assert.Equal(t, path, store.(*tokenstore.File).Path())
	})

	t.Run("sqlite", func(t *testing.T) {
		dsn := "file:" + filepath.Join(t.TempDir(), "storefront.db")
		store, closeFn, err := tokenstore.Open(ctx, tokenstore.Options{Driver: tokenstore.DriverSQLite, DSN: dsn})
		require.NoError(t, err)
		defer closeFn()
		exerciseStore(t, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		store, closeFn, err := tokenstore.Open(ctx, tokenstore.Options{
			Driver:      tokenstore.DriverRedis,
			RedisAddr:   mr.Addr(),
			RedisPrefix: "sf",
		})
		require.NoError(t, err)
		defer closeFn()
		exerciseStore(t, store)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := tokenstore.Open(ctx, tokenstore.Options{Driver: "etcd"})
		assert.Error(t, err)
	})
}

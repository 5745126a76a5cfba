package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goliatone/go-storefront"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Drivers accepted by Open
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Options selects and configures a store
type Options struct {
	Driver        string
	Key           string
	Path          string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	TTL           time.Duration
}

// Open builds the store named by opts.Driver. The returned close function
// releases any connection the store holds.
func Open(ctx context.Context, opts Options) (storefront.TokenStore, func() error, error) {
	noop := func() error { return nil }

	key := opts.Key
	if key == "" {
		key = DefaultKey
	}

	switch opts.Driver {
	case "", DriverFile:
		path := opts.Path
		if path == "" {
			var err error
			if path, err = DefaultPath(key); err != nil {
				return nil, noop, err
			}
		}
		return NewFile(path), noop, nil

	case DriverMemory:
		return NewMemory(), noop, nil

	case DriverSQLite:
		dsn := opts.DSN
		if dsn == "" {
			dsn = "file:storefront.db?cache=shared"
		}
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, noop, fmt.Errorf("tokenstore: open sqlite: %w", err)
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		store := NewSQL(db, key)
		if err := store.CreateSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("tokenstore: create schema: %w", err)
		}
		return store, db.Close, nil

	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("tokenstore: ping redis: %w", err)
		}
		return NewRedis(rdb, opts.RedisPrefix, key, opts.TTL), rdb.Close, nil

	default:
		return nil, noop, fmt.Errorf("tokenstore: unknown driver %q", opts.Driver)
	}
}

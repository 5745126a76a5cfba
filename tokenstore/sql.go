package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goliatone/go-storefront"
	"github.com/uptrace/bun"
)

var _ storefront.TokenStore = (*SQL)(nil)

// StoredValue is the Bun model for the client_storage key/value table.
type StoredValue struct {
	bun.BaseModel `bun:"table:client_storage"`

	Key       string    `bun:"storage_key,pk"`
	Value     string    `bun:"storage_value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// SQL keeps the token in a client_storage row, one row per key.
type SQL struct {
	db  *bun.DB
	key string
}

// NewSQL returns a store for key. Call CreateSchema once before use on a
// fresh database.
func NewSQL(db *bun.DB, key string) *SQL {
	if key == "" {
		key = DefaultKey
	}
	return &SQL{db: db, key: key}
}

// CreateSchema creates the client_storage table if it does not exist.
func (s *SQL) CreateSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*StoredValue)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (s *SQL) Get(ctx context.Context) (string, error) {
	var model StoredValue
	err := s.db.NewSelect().
		Model(&model).
		Where("storage_key = ?", s.key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return model.Value, nil
}

func (s *SQL) Set(ctx context.Context, token string) error {
	model := &StoredValue{
		Key:       s.key,
		Value:     token,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.db.NewInsert().
		Model(model).
		On("CONFLICT (storage_key) DO UPDATE").
		Set("storage_value = EXCLUDED.storage_value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *SQL) Remove(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*StoredValue)(nil)).
		Where("storage_key = ?", s.key).
		Exec(ctx)
	return err
}

// Package repositories is the persistence accessor of the API resources.
//
// One generic Repository serves every model. Each mutation runs its
// existence check, statement and re-fetch inside a single transaction.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/bizapi/pkg/cache"
	"github.com/shashiranjanraj/bizapi/pkg/logger"
	"github.com/shashiranjanraj/bizapi/pkg/patch"
)

var (
	// ErrNotFound means no row has the requested key. Keys that cannot be
	// parsed for the key column also report ErrNotFound.
	ErrNotFound = errors.New("record not found")
	// ErrNoRowsAffected means a statement ran but changed nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrDuplicate means a unique or primary key constraint was violated.
	ErrDuplicate = errors.New("duplicate key")
)

// KeyParser converts a path parameter into a key value.
type KeyParser func(raw string) (interface{}, bool)

// UintKey parses generated integer keys.
func UintKey(raw string) (interface{}, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, false
	}
	return uint(n), true
}

// StringKey accepts any non-empty key.
func StringKey(raw string) (interface{}, bool) {
	if raw == "" {
		return nil, false
	}
	return raw, true
}

// Repository reads and writes one model type.
type Repository[T any] struct {
	db        *gorm.DB
	table     string
	keyColumn string
	parseKey  KeyParser
	keyOf     func(*T) interface{}
	cache     cache.Store
	ttl       time.Duration
}

// Options configures a Repository.
type Options[T any] struct {
	Table     string
	KeyColumn string
	ParseKey  KeyParser
	// KeyOf returns the key of a row, used to re-select after insert.
	KeyOf func(*T) interface{}
	Cache cache.Store
	TTL   time.Duration
}

func New[T any](db *gorm.DB, opts Options[T]) *Repository[T] {
	store := opts.Cache
	if store == nil {
		store = cache.Nop{}
	}
	return &Repository[T]{
		db:        db,
		table:     opts.Table,
		keyColumn: opts.KeyColumn,
		parseKey:  opts.ParseKey,
		keyOf:     opts.KeyOf,
		cache:     store,
		ttl:       opts.TTL,
	}
}

// All returns every row in storage order. Never nil.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// Find returns the row with the given key, reading through the cache.
func (r *Repository[T]) Find(ctx context.Context, raw string) (*T, error) {
	key, ok := r.parseKey(raw)
	if !ok {
		return nil, ErrNotFound
	}

	row := new(T)
	ck := cache.Key(r.table, key)
	if r.cache.Get(ctx, ck, row) {
		return row, nil
	}

	row, err := r.take(r.db.WithContext(ctx), key)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, ck, row, r.ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache set failed", "key", ck, "error", err)
	}
	return row, nil
}

// Create inserts row and returns it as stored.
func (r *Repository[T]) Create(ctx context.Context, row *T) (*T, error) {
	var stored *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Create(row)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}

		var err error
		stored, err = r.take(tx, r.keyOf(row))
		return err
	})
	if err != nil {
		return nil, err
	}

	r.forget(ctx, r.keyOf(stored))
	return stored, nil
}

// Update applies set to the row with the given key and returns the row as
// stored. A missing row wins over an empty set: ErrNotFound is checked
// first, then patch.ErrNoFields.
func (r *Repository[T]) Update(ctx context.Context, raw string, set patch.Set) (*T, error) {
	key, ok := r.parseKey(raw)
	if !ok {
		return nil, ErrNotFound
	}

	var stored *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.take(tx, key); err != nil {
			return err
		}
		if len(set) == 0 {
			return patch.ErrNoFields
		}

		res := tx.Model(new(T)).Where(r.eq(key)).Updates(set.Map())
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}

		var err error
		stored, err = r.take(tx, key)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.forget(ctx, key)
	return stored, nil
}

// Delete removes the row with the given key.
func (r *Repository[T]) Delete(ctx context.Context, raw string) error {
	key, ok := r.parseKey(raw)
	if !ok {
		return ErrNotFound
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.take(tx, key); err != nil {
			return err
		}

		res := tx.Where(r.eq(key)).Delete(new(T))
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.forget(ctx, key)
	return nil
}

// Count returns the number of rows.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func (r *Repository[T]) take(db *gorm.DB, key interface{}) (*T, error) {
	row := new(T)
	if err := db.Where(r.eq(key)).Take(row).Error; err != nil {
		return nil, translate(err)
	}
	return row, nil
}

func (r *Repository[T]) eq(key interface{}) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: r.keyColumn}, Value: key}
}

// forget drops the cached copy of a row after a committed mutation.
func (r *Repository[T]) forget(ctx context.Context, key interface{}) {
	ck := cache.Key(r.table, key)
	if err := r.cache.Del(ctx, ck); err != nil {
		logger.WithCtx(ctx).Warn("cache invalidation failed", "key", ck, "error", err)
	}
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

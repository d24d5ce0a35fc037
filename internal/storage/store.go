// Package storage is the durable key-value store behind the plan library
// and user settings. Values are opaque bytes, normally JSON documents that
// are always written wholesale.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/claude/runpro/internal/models"
)

// Keys used by the application.
const (
	KeyActivePlan     = "activePlan"
	KeyActivePlanID   = "activePlanId"
	KeyPlanCollection = "planCollection"
	KeyAvatarChoice   = "avatarChoice"
)

// Store is a durable map of named values. A missing key is reported as
// (nil, false, nil), never as an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ReadJSON decodes the value at key into v, which must be a non-nil pointer.
// It reports false when the key is absent. A value that does not decode
// yields an error wrapping models.ErrStorage and leaves v untouched.
func ReadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	dst := reflect.ValueOf(v)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return false, fmt.Errorf("decoding %s: destination must be a non-nil pointer", key)
	}
	fresh := reflect.New(dst.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		return false, fmt.Errorf("decoding %s: %w: %v", key, models.ErrStorage, err)
	}
	dst.Elem().Set(fresh.Elem())
	return true, nil
}

// ReadJSONOrZero is ReadJSON that treats a corrupt value as absent, logging it.
func ReadJSONOrZero(ctx context.Context, s Store, key string, v any, log *slog.Logger) (bool, error) {
	ok, err := ReadJSON(ctx, s, key, v)
	if err != nil && errors.Is(err, models.ErrStorage) {
		log.Warn("ignoring unreadable stored value", "key", key, "error", err)
		return false, nil
	}
	return ok, err
}

// WriteJSON encodes v and overwrites the value at key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Open returns the Store for the named driver: "sqlite" (path), "postgres"
// (dsn, schema migrated from migrationsPath) or "memory".
func Open(ctx context.Context, driver, path, dsn, migrationsPath string) (Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(path)
	case "postgres":
		if err := RunMigrations(dsn, migrationsPath); err != nil {
			return nil, err
		}
		return NewPostgres(ctx, dsn)
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}

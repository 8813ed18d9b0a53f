package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Keys under which the persistent fields are stored.
const (
	KeyTasks  = "fn_tasks"
	KeyMode   = "fn_mode"
	KeyPoints = "fn_points"
	KeyStats  = "fn_stats"
)

// KV is a flat string key-value store.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

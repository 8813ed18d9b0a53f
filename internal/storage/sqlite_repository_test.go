package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "focusnova-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

// exerciseKV runs the same contract against every backend.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, KeyTasks)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, KeyPoints, "10"))
	require.NoError(t, kv.Set(ctx, KeyMode, "mission"))
	require.NoError(t, kv.Set(ctx, KeyPoints, "25"))

	got, err := kv.Get(ctx, KeyPoints)
	require.NoError(t, err)
	assert.Equal(t, "25", got)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyMode, KeyPoints}, keys)

	require.NoError(t, kv.Delete(ctx, KeyMode))
	assert.ErrorIs(t, kv.Delete(ctx, KeyMode), ErrNotFound)

	require.NoError(t, kv.Clear(ctx))
	keys, err = kv.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSQLiteStoreContract(t *testing.T) {
	exerciseKV(t, setupSQLite(t))
}

func TestMemoryStoreContract(t *testing.T) {
	exerciseKV(t, NewMemoryStore())
}

func TestFileStoreContractAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	fs, err := OpenFile(path)
	require.NoError(t, err)
	exerciseKV(t, fs)

	ctx := context.Background()
	require.NoError(t, fs.Set(ctx, KeyStats, `{"2026-02-09":1}`))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, KeyStats)
	require.NoError(t, err)
	assert.Equal(t, `{"2026-02-09":1}`, got)
}

func TestMemoryStoreFailWrites(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("disk full")
	store.FailWrites = boom
	if err := store.Set(context.Background(), KeyPoints, "1"); !errors.Is(err, boom) {
		t.Fatalf("expected injected write error, got %v", err)
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{BackendSQLite, BackendFile, BackendMemory} {
		kv, err := Open(backend, filepath.Join(dir, "data", backend+".db"))
		if err != nil {
			t.Fatalf("open %s: %v", backend, err)
		}
		if err := kv.Set(context.Background(), KeyMode, "clean"); err != nil {
			t.Fatalf("%s set: %v", backend, err)
		}
		_ = kv.Close()
	}
	if _, err := Open("redis", ""); err == nil {
		t.Fatal("expected unknown backend error")
	}
}

func TestOpenFileRecoversFromCorruptData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "fn.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"fn_tasks": "[]", `), 0o600))

	kv, err := Open(BackendFile, path)
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.Get(ctx, "fn_tasks")
	assert.True(t, errors.Is(err, ErrNotFound))

	moved, err := os.ReadFile(path + CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, `{"fn_tasks": "[]", `, string(moved))

	require.NoError(t, kv.Set(ctx, "fn_points", "10"))
	reopened, err := OpenFile(path)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "fn_points")
	require.NoError(t, err)
	assert.Equal(t, "10", got)
}

package location

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "store.json")
	first := NewFileBackend(path)
	if err := first.Set(ctx, DefaultKey, `{"address":"강남역"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Set(ctx, "other", "1"); err != nil {
		t.Fatalf("set other: %v", err)
	}

	second := NewFileBackend(path)
	value, err := second.Get(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != `{"address":"강남역"}` {
		t.Fatalf("value = %s", value)
	}
	if err := second.Delete(ctx, DefaultKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := second.Get(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if v, _ := second.Get(ctx, "other"); v != "1" {
		t.Fatalf("unrelated key lost: %q", v)
	}
}

func TestFileBackendMissingFileIsNotFound(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := backend.Get(context.Background(), DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFileBackendCorruptAreaIsReplacedOnWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	backend := NewFileBackend(path)
	store := NewStore(backend, WithLogger(&recordingLogger{}))
	if _, ok := store.Load(ctx); ok {
		t.Fatalf("corrupt area must not load")
	}
	if err := store.Save(ctx, Location{Address: "판교역"}); err != nil {
		t.Fatalf("save over corrupt area: %v", err)
	}
	loc, ok := store.Load(ctx)
	if !ok || loc.Address != "판교역" {
		t.Fatalf("reloaded %+v ok=%v", loc, ok)
	}
}

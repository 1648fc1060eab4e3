package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("NewFileStore() unexpected error: %v", err)
	}
	return s
}

func TestFileStoreGetMissing(t *testing.T) {
	s := newTestFileStore(t)

	_, ok, err := s.Get("spendify_session_v1")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() reported a value in an empty store")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := newTestFileStore(t)

	if err := s.Set("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	raw, ok, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Get() did not find key after Set()")
	}
	if string(raw) != `{"a":1}` {
		t.Errorf("Get() = %q, want %q", raw, `{"a":1}`)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() unexpected error: %v", err)
	}
	if err := s.Set("k", []byte(`"v"`)); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() reopen unexpected error: %v", err)
	}
	raw, ok, err := reopened.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get() after reopen = (%q, %v, %v), want value", raw, ok, err)
	}
	if string(raw) != `"v"` {
		t.Errorf("Get() after reopen = %q, want %q", raw, `"v"`)
	}
}

func TestFileStoreDelete(t *testing.T) {
	s := newTestFileStore(t)

	if err := s.Set("k", []byte(`1`)); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("Get() found key after Delete()")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete() of absent key unexpected error: %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() unexpected error: %v", err)
	}

	if _, _, err := s.Get("k"); err == nil {
		t.Error("Get() expected error for corrupt store file")
	}
}

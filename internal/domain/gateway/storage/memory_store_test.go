package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryStoreUploadDownload(t *testing.T) {
	store := NewMemoryStore("raw-zone")

	if err := store.Upload(t.Context(), "raw-zone", "data/file.tsv", strings.NewReader("hello")); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	body, err := store.Download(t.Context(), "raw-zone", "data/file.tsv")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading object: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("object body = %q, want %q", string(data), "hello")
	}
}

func TestMemoryStoreUploadFile(t *testing.T) {
	store := NewMemoryStore("raw-zone")

	path := filepath.Join(t.TempDir(), "snapshot.tsv")
	if err := os.WriteFile(path, []byte("a\tb\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	size, err := store.UploadFile(t.Context(), "raw-zone", "raw/snapshot.tsv", path)
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
	if size != 4 {
		t.Errorf("size = %d, want 4", size)
	}

	info, err := store.Head(t.Context(), "raw-zone", "raw/snapshot.tsv")
	if err != nil {
		t.Fatalf("Head returned error: %v", err)
	}
	if info.SizeBytes != 4 {
		t.Errorf("SizeBytes = %d, want 4", info.SizeBytes)
	}
}

func TestMemoryStoreMissingObject(t *testing.T) {
	store := NewMemoryStore("raw-zone")

	_, err := store.Download(t.Context(), "raw-zone", "nope")
	if !IsNotExist(err) {
		t.Errorf("expected not-found error, got %v", err)
	}

	_, err = store.Head(t.Context(), "raw-zone", "nope")
	if !IsNotExist(err) {
		t.Errorf("expected not-found error, got %v", err)
	}

	if err := store.Delete(t.Context(), "raw-zone", "nope"); err != nil {
		t.Errorf("Delete of a missing object returned error: %v", err)
	}
}

func TestMemoryStoreUnknownBucket(t *testing.T) {
	store := NewMemoryStore("raw-zone")

	if err := store.CheckBucket(t.Context(), "raw-zone"); err != nil {
		t.Errorf("CheckBucket returned error for existing bucket: %v", err)
	}
	if err := store.CheckBucket(t.Context(), "other"); err == nil {
		t.Error("expected error for unknown bucket")
	}
	if err := store.Upload(t.Context(), "other", "k", strings.NewReader("x")); err == nil {
		t.Error("expected error uploading to unknown bucket")
	}
}

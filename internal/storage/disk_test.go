package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskStoreSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root, "http://localhost:8080/media/")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	ctx := context.Background()
	url, err := store.Save(ctx, "school-logos/1700000000000_crest.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "http://localhost:8080/media/school-logos/1700000000000_crest.png" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(root, "school-logos", "1700000000000_crest.png"))
	if err != nil {
		t.Fatalf("reading saved blob: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("blob content = %q", data)
	}

	if got := store.KeyFromURL(url); got != "school-logos/1700000000000_crest.png" {
		t.Errorf("KeyFromURL = %q", got)
	}
	if got := store.KeyFromURL("https://elsewhere.example/x.png"); got != "" {
		t.Errorf("KeyFromURL foreign url = %q, want empty", got)
	}

	if err := store.Delete(ctx, "school-logos/1700000000000_crest.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err = store.Delete(ctx, "school-logos/1700000000000_crest.png")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("second delete err = %v, want not-exist", err)
	}
}

func TestDiskStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080/media")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	for _, key := range []string{"../etc/passwd", "a/../../b", ""} {
		if _, err := store.Save(context.Background(), key, []byte("x")); err == nil {
			t.Errorf("Save(%q) accepted an escaping key", key)
		}
	}
}

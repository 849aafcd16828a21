package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"docbuilder-backend/internal/shared/storage/object"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/files")
	ctx := context.Background()

	obj, err := object.Save(ctx, store, "user-1", "profile", "photo.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if obj.SizeBytes != 5 {
		t.Fatalf("size = %d", obj.SizeBytes)
	}
	if !strings.HasPrefix(obj.ContentType, "text/plain") {
		t.Fatalf("content type = %q", obj.ContentType)
	}
	if obj.URL != "http://localhost:8080/files/"+obj.Key {
		t.Fatalf("url = %q", obj.URL)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "hello" {
		t.Fatalf("data = %q", data)
	}
}

func TestOpenMissingAndInvalid(t *testing.T) {
	store := New(t.TempDir(), "")
	ctx := context.Background()
	if _, err := store.Open(ctx, "nope/missing.png"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Open(ctx, "../outside"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := store.Put(ctx, "../outside", "text/plain", strings.NewReader("x")); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey on put, got %v", err)
	}
}

package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"docbuilder-backend/internal/shared/util"
)

var (
	// ErrInvalidKey is returned for keys that escape the store root.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrNotFound is returned when no object exists under a key.
	ErrNotFound = errors.New("object not found")
)

// Store persists binary objects under caller-chosen keys.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	PublicURL(key string) string
}

// Object describes a stored blob.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	SizeBytes   int64  `json:"sizeBytes"`
	ContentType string `json:"contentType"`
}

// UserKey builds "<hashed user>/<kind>/<unix millis>_<file>" so keys are
// stable per upload and never expose the raw user id.
func UserKey(userID, kind, fileName string, now time.Time) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	kind = strings.Trim(strings.TrimSpace(kind), "/")
	if kind == "" || strings.Contains(kind, "..") {
		return "", ErrInvalidKey
	}
	return path.Join(util.HashUserKey(userID), kind, fmt.Sprintf("%d_%s", now.UnixMilli(), name)), nil
}

// CleanKey normalizes a storage key and rejects traversal.
func CleanKey(key string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(key))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// Sniff reads up to 512 bytes to detect the content type and returns a
// reader that replays them.
func Sniff(r io.Reader) (string, io.Reader, error) {
	var head [512]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	return contentType, io.MultiReader(bytes.NewReader(head[:n]), r), nil
}

// Save sniffs the content type, writes r under a user-scoped key and
// describes the result.
func Save(ctx context.Context, store Store, userID, kind, fileName string, r io.Reader) (Object, error) {
	key, err := UserKey(userID, kind, fileName, time.Now().UTC())
	if err != nil {
		return Object{}, err
	}
	contentType, body, err := Sniff(r)
	if err != nil {
		return Object{}, err
	}
	size, err := store.Put(ctx, key, contentType, body)
	if err != nil {
		return Object{}, err
	}
	return Object{Key: key, URL: store.PublicURL(key), SizeBytes: size, ContentType: contentType}, nil
}

// JoinURL appends key to base with exactly one slash between them.
func JoinURL(base, key string) string {
	base = strings.TrimRight(base, "/")
	key = strings.TrimLeft(key, "/")
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}

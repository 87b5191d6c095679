package filestorage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidKey is returned for keys that are empty or escape their folder
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStorage stores uploaded media under slash separated keys such as "gallery/photo.jpg"
type ObjectStorage interface {
	// Exists reports whether an object is already stored under key
	Exists(ctx context.Context, key string) (bool, error)

	// Put stores body under key. Callers check Exists first to avoid overwriting.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the address under which key is served
	URL(key string) string
}

// CleanKey normalises key and rejects absolute or parent-relative keys
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, `\`, "/"))
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

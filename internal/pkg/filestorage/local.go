package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yigit/memorial/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // Public prefix of the stored files, "/uploads" when empty
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (ls *LocalStorage) fullPath(key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(cleaned)), nil
}

// Exists reports whether key is present on disk
func (ls *LocalStorage) Exists(_ context.Context, key string) (bool, error) {
	p, err := ls.fullPath(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return true, nil
}

// Put writes body to key, creating the folder as needed
func (ls *LocalStorage) Put(ctx context.Context, key string, body io.Reader, _ int64, _ string) error {
	dstPath, err := ls.fullPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, readerWithContext{ctx: ctx, r: body}); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Debug().Str("key", key).Str("path", dstPath).Msg("File saved successfully")
	return nil
}

// Delete removes key from disk. Missing files are ignored.
func (ls *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := ls.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error().Err(err).Str("path", p).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL returns the public path of key
func (ls *LocalStorage) URL(key string) string {
	return ls.baseURL + "/" + strings.TrimLeft(key, "/")
}

// BasePath is the directory served under the public prefix
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

type readerWithContext struct {
	ctx context.Context
	r   io.Reader
}

func (r readerWithContext) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

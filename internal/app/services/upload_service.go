package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/filestorage"
)

// Upload folders
const (
	ProfilePictureFolder = "profile_pictures"
	GalleryFolder        = "gallery"
)

// maxKeyAttempts bounds the rename loop when names keep colliding
const maxKeyAttempts = 16

// UploadFile is one file taken from a multipart request
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadService stores profile pictures and gallery images
type UploadService interface {
	Store(ctx context.Context, folder string, file UploadFile) (string, error)
}

type uploadServiceImpl struct {
	storage filestorage.ObjectStorage
	suffix  func() string
	logger  zerolog.Logger
}

// NewUploadService creates an UploadService writing to storage
func NewUploadService(storage filestorage.ObjectStorage, logger zerolog.Logger) UploadService {
	return &uploadServiceImpl{
		storage: storage,
		suffix:  randomSuffix,
		logger:  logger,
	}
}

// randomSuffix returns 8 random hex characters
func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// sanitizeFilename keeps the base name and drops characters unsafe in object keys
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == '/', r == '?', r == '#', r == '%':
			return -1
		case r == ' ':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

// Store writes file under folder/<name>. When that key is taken the name is prefixed
// with a random 8 character suffix until a free key is found. It returns the stored key.
func (s *uploadServiceImpl) Store(ctx context.Context, folder string, file UploadFile) (string, error) {
	if folder != ProfilePictureFolder && folder != GalleryFolder {
		return "", apperrors.NewCustomError(apperrors.ErrUploadNotAllowed, fmt.Sprintf("unknown upload folder %q", folder))
	}
	name := sanitizeFilename(file.Filename)
	if name == "" {
		return "", apperrors.NewValidationError("filename", "uploaded file has no usable name")
	}

	key := folder + "/" + name
	for attempt := 0; ; attempt++ {
		exists, err := s.storage.Exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check upload key: %w", err)
		}
		if !exists {
			break
		}
		if attempt >= maxKeyAttempts {
			return "", apperrors.NewConflictError("could not find a free name for " + name)
		}
		key = folder + "/" + s.suffix() + "-" + name
	}

	body, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer body.Close()

	if err := s.storage.Put(ctx, key, body, file.Size, file.ContentType); err != nil {
		return "", err
	}

	s.logger.Info().Str("key", key).Int64("size", file.Size).Msg("Upload stored")
	return key, nil
}

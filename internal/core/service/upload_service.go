package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/taskboard/taskboard/internal/api/metrics"
	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// DefaultMaxUploadBytes caps a single image upload.
const DefaultMaxUploadBytes = 5 << 20

var (
	allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

// UploadService validates image uploads and hands them to a FileStore.
type UploadService struct {
	store    ports.FileStore
	maxBytes int64
}

func NewUploadService(store ports.FileStore, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{store: store, maxBytes: maxBytes}
}

// Upload checks size and content type, then stores the file under a unique
// name and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, in ports.UploadInput) (string, error) {
	if in.Content == nil {
		return "", domain.NewValidationError("file", "No file uploaded")
	}
	if in.Size > s.maxBytes {
		return "", s.tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(in.Content, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", s.tooLarge()
	}
	if len(data) == 0 {
		return "", domain.NewValidationError("file", "No file uploaded")
	}

	if !mimetype.EqualsAny(mimetype.Detect(data).String(), allowedImageTypes...) {
		return "", domain.NewValidationError("file", "Invalid file type. Only JPEG, PNG, and WebP are allowed.")
	}

	url, err := s.store.Save(ctx, storedName(in.Filename), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	metrics.UploadBytes.Observe(float64(len(data)))
	return url, nil
}

func (s *UploadService) tooLarge() error {
	return domain.NewValidationError("file", "File too large. Maximum size is "+formatSize(s.maxBytes)+".")
}

// formatSize renders n as whole MB or KB when it divides evenly, bytes otherwise.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return strconv.FormatInt(n>>20, 10) + "MB"
	case n >= 1<<10 && n%(1<<10) == 0:
		return strconv.FormatInt(n>>10, 10) + "KB"
	default:
		return strconv.FormatInt(n, 10) + " bytes"
	}
}

func storedName(original string) string {
	base := filepath.Base(filepath.Clean("/" + original))
	if base == "/" || base == "." {
		base = "upload"
	}
	return uuid.NewString() + "-" + whitespaceRun.ReplaceAllString(base, "_")
}

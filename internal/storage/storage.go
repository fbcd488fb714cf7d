// Package storage keeps uploaded catalog images on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/drashti611/gowear-frontend/internal/shared/slug"
)

var ErrUnsupportedType = errors.New("storage: unsupported image type")

type PutInput struct {
	// Name labels the image (the entity name); it becomes the key prefix.
	Name        string
	Filename    string
	ContentType string
	Size        int64
}

// PutResult.URL is what the backend stores: a path relative to the image
// host for local files, an absolute URL for S3.
type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// NewKey builds "<slug>-<uuid><ext>" for an upload.
func NewKey(in PutInput) (string, error) {
	ext := safeExt(in.Filename)
	if ext == "" {
		return "", ErrUnsupportedType
	}
	return slug.FromName(in.Name, "image") + "-" + uuid.NewString() + ext, nil
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext
	default:
		return ""
	}
}

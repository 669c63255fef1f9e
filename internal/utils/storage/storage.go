package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"Recipe-Box-Backend/domain"
)

var (
	AllowImage = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

	ErrFileTypeNotAllowed = domain.NewError(domain.ErrValidation, "file type not allowed")
	ErrEmptyFile          = domain.NewError(domain.ErrValidation, "file is empty")
)

// Storage keeps uploaded recipe images. Object keys are relative paths such
// as "recipes/<name>.png"; public links are derived from them.
type Storage interface {
	UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
	DeleteFile(ctx context.Context, objectKey string) error
	GetPublicLinkKey(objectKey string) string
	GetObjectKeyFromLink(link string) string
}

type Config struct {
	Driver        string
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
	AccessKey     string
	SecretKey     string
}

func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL)
	case "s3":
		return NewAwsS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// objectKey validates the upload and builds "<folder>/<fileName><ext>".
func objectKey(fileName string, file *multipart.FileHeader, folder string, allowed []string) (string, error) {
	if file == nil || file.Size == 0 {
		return "", ErrEmptyFile
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowed) > 0 && !slices.Contains(allowed, ext) {
		return "", ErrFileTypeNotAllowed
	}

	key := fileName + ext
	if folder != "" {
		key = strings.Trim(folder, "/") + "/" + key
	}
	return key, nil
}

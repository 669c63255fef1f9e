package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// PublicPrefix is where the HTTP layer mounts the local upload directory.
const PublicPrefix = "/uploads"

type LocalStorage struct {
	baseDir string
	baseURL string
}

func NewLocalStorage(baseDir, publicBaseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &LocalStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(publicBaseURL, "/") + PublicPrefix,
	}, nil
}

func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

func (s *LocalStorage) UploadFile(_ context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	key, err := objectKey(fileName, file, folder, allowed)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return key, nil
}

// DeleteFile is a no-op for keys that no longer exist.
func (s *LocalStorage) DeleteFile(_ context.Context, objectKey string) error {
	if objectKey == "" || strings.Contains(objectKey, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(objectKey)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) GetPublicLinkKey(objectKey string) string {
	return s.baseURL + "/" + objectKey
}

func (s *LocalStorage) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(strings.TrimPrefix(link, s.baseURL), "/")
}

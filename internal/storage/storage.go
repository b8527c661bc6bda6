package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage persists uploaded images and returns the reference string stored in
// the database: a relative path for local storage, a URL for MinIO.
type Storage interface {
	Save(ctx context.Context, objectName string, contentType string, data io.Reader, size int64) (string, error)
	Delete(ctx context.Context, objectName string) error
}

type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (s *LocalStorage) Save(ctx context.Context, objectName string, contentType string, data io.Reader, size int64) (string, error) {
	fullPath := filepath.Join(s.baseDir, objectName)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("ошибка при создании каталога загрузок: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("ошибка при создании файла: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("ошибка при записи файла: %w", err)
	}

	// relative reference, the way clients expect it
	return filepath.ToSlash(filepath.Join(s.baseDir, objectName)), nil
}

func (s *LocalStorage) Delete(ctx context.Context, objectName string) error {
	err := os.Remove(filepath.Join(s.baseDir, objectName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка при удалении файла: %w", err)
	}
	return nil
}

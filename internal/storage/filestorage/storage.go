package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const publicPathPrefix = "/storage/v1/object/public/"

var publicURLPattern = regexp.MustCompile(`/storage/v1/object/public/([^/]+)/(.+)$`)

// FileStorage интерфейс bucket-ориентированного хранилища объектов
type FileStorage interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, bucket string, paths []string) error
	PublicURL(bucket, path string) string
}

// PublicURL строит постоянный публичный URL: {baseUrl}/storage/v1/object/public/{bucket}/{path}
func PublicURL(baseURL, bucket, path string) string {
	return strings.TrimRight(baseURL, "/") + publicPathPrefix + bucket + "/" + strings.TrimLeft(path, "/")
}

// ParsePublicURL обратная операция к PublicURL
func ParsePublicURL(raw string) (bucket, path string, ok bool) {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		raw = u.Path
	}

	m := publicURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", "", false
	}

	return m[1], m[2], true
}

// LocalFileStorage реализация для локальной файловой системы.
// Объекты лежат в {baseDir}/{bucket}/{path} и раздаются HTTP-сервером
// по тому же шаблону URL, что и Supabase.
type LocalFileStorage struct {
	baseDir string
	baseURL string
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: baseURL,
	}, nil
}

func (s *LocalFileStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath, err := s.resolve(bucket, path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}

// Remove удаляет объекты; отсутствующие файлы не считаются ошибкой
func (s *LocalFileStorage) Remove(ctx context.Context, bucket string, paths []string) error {
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		fullPath, err := s.resolve(bucket, p)
		if err != nil {
			return err
		}

		if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}

	return nil
}

func (s *LocalFileStorage) PublicURL(bucket, path string) string {
	return PublicURL(s.baseURL, bucket, path)
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(bucket, path string) string {
	return filepath.Join(s.baseDir, bucket, filepath.FromSlash(path))
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

func (s *LocalFileStorage) resolve(bucket, path string) (string, error) {
	fullPath := s.GetFullPath(bucket, path)

	// объект остается внутри своего бакета
	root := filepath.Join(filepath.Clean(s.baseDir), bucket) + string(os.PathSeparator)
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || !strings.HasPrefix(filepath.Clean(fullPath), root) {
		return "", fmt.Errorf("path escapes bucket: %s/%s", bucket, path)
	}

	return fullPath, nil
}

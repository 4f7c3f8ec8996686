package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage хранилище объектов Supabase Storage
type SupabaseStorage struct {
	client  *storage_go.Client
	baseURL string
}

func NewSupabaseStorage(supabaseURL, serviceKey string) *SupabaseStorage {
	baseURL := strings.TrimRight(supabaseURL, "/")

	return &SupabaseStorage{
		client:  storage_go.NewClient(baseURL+"/storage/v1", serviceKey, nil),
		baseURL: baseURL,
	}
}

func (s *SupabaseStorage) Upload(_ context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	upsert := false

	_, err := s.client.UploadFile(bucket, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, path, err)
	}

	return path, nil
}

func (s *SupabaseStorage) Remove(_ context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	if _, err := s.client.RemoveFile(bucket, paths); err != nil {
		return fmt.Errorf("failed to remove from %s: %w", bucket, err)
	}

	return nil
}

func (s *SupabaseStorage) PublicURL(bucket, path string) string {
	return PublicURL(s.baseURL, bucket, path)
}

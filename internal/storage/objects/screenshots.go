// Package objects stores project screenshots in object storage.
package objects

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

const screenshotName = "screenshot.png"

// ScreenshotStore persists a captured PNG and returns the URL to record on the project.
type ScreenshotStore interface {
	PutScreenshot(ctx context.Context, userID, projectID string, data []byte) (string, error)
}

type SupabaseStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewSupabaseStore(supabaseURL, serviceRoleKey, bucket string) *SupabaseStore {
	baseURL := strings.TrimRight(supabaseURL, "/")
	return &SupabaseStore{
		client:  storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// ScreenshotPath is users/{user}/projects/{project}/screenshot.png.
func ScreenshotPath(userID, projectID string) string {
	return fmt.Sprintf("users/%s/projects/%s/%s", userID, projectID, screenshotName)
}

func (s *SupabaseStore) PutScreenshot(_ context.Context, userID, projectID string, data []byte) (string, error) {
	path := ScreenshotPath(userID, projectID)

	contentType := "image/png"
	upsert := true
	if _, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}); err != nil {
		return "", fmt.Errorf("failed to upload screenshot: %w", err)
	}

	return s.PublicURL(path), nil
}

func (s *SupabaseStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

// DataURLStore keeps the image inline on the project row.
type DataURLStore struct{}

func (DataURLStore) PutScreenshot(_ context.Context, _, _ string, data []byte) (string, error) {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Package storage uploads user files to Supabase object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseUploader stores objects in one Supabase bucket and returns their
// public URLs. It satisfies user.AvatarUploader.
type SupabaseUploader struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseUploader creates an uploader against the given project
func NewSupabaseUploader(projectURL, serviceKey, bucket string) *SupabaseUploader {
	client := storage_go.NewClient(projectURL+"/storage/v1", serviceKey, nil)
	return &SupabaseUploader{client: client, bucket: bucket}
}

// Upload writes data to objectPath in the bucket, replacing any existing
// object, and returns the public URL.
func (u *SupabaseUploader) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	upsert := true
	options := storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	if _, err := u.client.UploadFile(u.bucket, objectPath, bytes.NewReader(data), options); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectPath, err)
	}

	publicURL := u.client.GetPublicUrl(u.bucket, objectPath)
	return publicURL.SignedURL, nil
}

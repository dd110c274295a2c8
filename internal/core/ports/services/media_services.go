package services

import "context"

// ImageUploader moves a locally saved upload to public storage.
type ImageUploader interface {
	// Upload stores the file at localPath and returns its public URL.
	// An empty localPath yields an empty URL and no error.
	Upload(ctx context.Context, localPath string) (string, error)
}

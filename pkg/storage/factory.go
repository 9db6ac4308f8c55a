package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"movies-api/pkg/config"
)

// Storage provider constants
const (
	StorageProviderLocal = "local"
	StorageProviderMinIO = "minio"
	StorageProviderGCS   = "gcs"
)

// NewStorageProvider creates a storage provider based on configuration
func NewStorageProvider(ctx context.Context, cfg *config.StorageConfig) (Provider, error) {
	switch cfg.Provider {
	case StorageProviderLocal:
		return NewLocalProvider(cfg.LocalPath, cfg.BaseURL)

	case StorageProviderMinIO:
		m := cfg.MinIO
		return NewMinIOProvider(ctx, m.Endpoint, m.AccessKey, m.SecretKey, m.Bucket, m.UseSSL, m.PublicEndpoint)

	case StorageProviderGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS bucket name is required")
		}
		return NewGCSProvider(ctx, cfg.GCSBucket)

	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// getContentType returns the MIME type based on file extension
func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

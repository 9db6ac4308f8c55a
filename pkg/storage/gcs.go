package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"cloud.google.com/go/storage"
)

// GCSProvider implements storage for Google Cloud Storage
type GCSProvider struct {
	client *storage.Client
	bucket string
}

// NewGCSProvider creates a new GCS storage provider
func NewGCSProvider(ctx context.Context, bucketName string) (*GCSProvider, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSProvider{
		client: client,
		bucket: bucketName,
	}, nil
}

// Upload uploads a file to Google Cloud Storage
func (g *GCSProvider) Upload(ctx context.Context, file *multipart.FileHeader, filename string) (string, error) {
	// open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// create a writer to the GCS object
	writer := g.client.Bucket(g.bucket).Object(filename).NewWriter(ctx)
	writer.ContentType = file.Header.Get("Content-Type")
	if writer.ContentType == "" {
		writer.ContentType = getContentType(filename)
	}

	_, err = io.Copy(writer, src)
	if err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %w", err)
	}

	// close the writer to finalize the upload
	err = writer.Close()
	if err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}

	return filename, nil
}

// GetSignedURL returns a signed URL for accessing the file
func (g *GCSProvider) GetSignedURL(ctx context.Context, path string) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(signedURLExpiry),
	}

	url, err := g.client.Bucket(g.bucket).SignedURL(path, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return url, nil
}

// Delete deletes a file from Google Cloud Storage
func (g *GCSProvider) Delete(ctx context.Context, path string) error {
	err := g.client.Bucket(g.bucket).Object(path).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete object from GCS: %w", err)
	}
	return nil
}

// Close closes the GCS client
func (g *GCSProvider) Close() error {
	return g.client.Close()
}

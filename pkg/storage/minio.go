package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"movies-api/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// signedURLExpiry is how long presigned poster URLs stay valid
const signedURLExpiry = time.Hour

// minioProvider implements the Provider interface using MinIO
type minioProvider struct {
	client       *minio.Client
	publicClient *minio.Client // Client configured with public endpoint for signing URLs
	bucket       string
}

// NewMinIOProvider creates a new MinIO storage provider
func NewMinIOProvider(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, publicEndpoint string) (Provider, error) {
	logger.Infof("creating MinIO provider with endpoint: %s, publicEndpoint: %s, useSSL: %v", endpoint, publicEndpoint, useSSL)

	// if publicEndpoint is empty, use the same as endpoint
	if publicEndpoint == "" {
		publicEndpoint = endpoint
	}

	// create MinIO client for internal operations
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	publicClient, err := minio.New(publicEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create public MinIO client: %w", err)
	}

	provider := &minioProvider{
		client:       client,
		publicClient: publicClient,
		bucket:       bucket,
	}

	// ensure bucket exists
	err = provider.ensureBucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	logger.Info("MinIO provider initialized successfully")
	return provider, nil
}

// ensureBucket creates the bucket if it doesn't exist
func (m *minioProvider) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		logger.Infof("creating bucket: %s", m.bucket)
		err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload uploads a file to MinIO
func (m *minioProvider) Upload(ctx context.Context, file *multipart.FileHeader, filename string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	// determine content type
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = getContentType(filename)
	}

	_, err = m.client.PutObject(ctx, m.bucket, filename, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to MinIO: %w", err)
	}

	return filename, nil
}

// GetSignedURL returns a presigned URL for accessing a file
func (m *minioProvider) GetSignedURL(ctx context.Context, path string) (string, error) {
	presignedURL, err := m.publicClient.PresignedGetObject(ctx, m.bucket, path, signedURLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return presignedURL.String(), nil
}

// Delete deletes a file from MinIO
func (m *minioProvider) Delete(ctx context.Context, path string) error {
	err := m.client.RemoveObject(ctx, m.bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file from MinIO: %w", err)
	}

	return nil
}

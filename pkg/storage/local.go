package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider implements storage for local filesystem
type LocalProvider struct {
	basePath string
	baseURL  string // For serving files via HTTP
}

// NewLocalProvider creates a new local storage provider
func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	// ensure the base path exists
	err := os.MkdirAll(basePath, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalProvider{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// BasePath returns the directory files are written to
func (l *LocalProvider) BasePath() string {
	return l.basePath
}

// Upload uploads a file to the local filesystem
func (l *LocalProvider) Upload(ctx context.Context, file *multipart.FileHeader, filename string) (string, error) {
	// open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fullPath, err := l.fullPath(filename)
	if err != nil {
		return "", err
	}

	// ensure the directory exists
	err = os.MkdirAll(filepath.Dir(fullPath), 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	// create the destination file
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	err = copyAndClose(dst, src)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", err
	}

	// return the relative path
	return filename, nil
}

// copyAndClose copies src into dst and closes it, reporting a failed close
func copyAndClose(dst io.WriteCloser, src io.Reader) error {
	_, err := io.Copy(dst, src)
	if err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to copy file: %w", err)
	}

	err = dst.Close()
	if err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// GetSignedURL returns a URL for accessing the file
func (l *LocalProvider) GetSignedURL(ctx context.Context, path string) (string, error) {
	// for local storage, we return a direct URL
	return fmt.Sprintf("%s/%s", l.baseURL, path), nil
}

// Delete deletes a file from the local filesystem
func (l *LocalProvider) Delete(ctx context.Context, path string) error {
	fullPath, err := l.fullPath(path)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// fullPath resolves a storage path, refusing anything that escapes basePath
func (l *LocalProvider) fullPath(path string) (string, error) {
	fullPath := filepath.Join(l.basePath, path)
	rel, err := filepath.Rel(l.basePath, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage path: %s", path)
	}
	return fullPath, nil
}

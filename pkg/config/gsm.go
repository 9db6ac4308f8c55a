package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Load reads the whole configuration from the Secret Manager secret named by
// CONFIG_SECRET when running on GCP, and from individual keys otherwise.
func Load(ctx context.Context) (*Config, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	secretName := os.Getenv("CONFIG_SECRET")
	if projectID == "" || secretName == "" {
		return NewConfig(), nil
	}
	return LoadFromSecretManager(ctx, projectID, secretName)
}

// LoadFromSecretManager loads configuration from Google Secret Manager
func LoadFromSecretManager(ctx context.Context, projectID, secretName string) (*Config, error) {
	secretData, err := accessSecretVersionContext(ctx, fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretName))
	if err != nil {
		return nil, fmt.Errorf("failed to access secret: %w", err)
	}

	return parseConfigJSON([]byte(secretData))
}

// parseConfigJSON decodes a JSON config document on top of the built-in defaults
func parseConfigJSON(data []byte) (*Config, error) {
	cfg := &Config{
		Port: "8080",
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
			SSLMode:         "disable",
		},
		Redis: RedisConfig{Port: "6379", TTL: 5 * time.Minute},
		Log:   LogConfig{Level: "info", Format: "json"},
		HTTP: HTTPConfig{
			PublicDir:      "public",
			SwaggerDocPath: "./api/swagger.yaml",
			BodyLimitBytes: defaultBodyLimit,
		},
		Storage: StorageConfig{Provider: "local", LocalPath: "./uploads"},
	}

	err := json.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal secret data: %w", err)
	}

	cfg.CORS = cfg.CORS.withDefaults()
	return cfg, nil
}

// accessSecretVersion accesses the payload for the given secret version if it exists.
func accessSecretVersion(name string) (string, error) {
	return accessSecretVersionContext(context.Background(), name)
}

func accessSecretVersionContext(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create secretmanager client: %w", err)
	}
	defer client.Close()

	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	}

	result, err := client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}

	return string(result.Payload.Data), nil
}

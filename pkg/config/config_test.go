package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredDBEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_NAME", "movies")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USERNAME", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
}

func TestNewConfig_Defaults(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("STORAGE_PROVIDER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := NewConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "movies", cfg.Database.Name)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "public", cfg.HTTP.PublicDir)
	assert.Equal(t, int64(102400), cfg.HTTP.BodyLimitBytes)
	assert.False(t, cfg.SeedDB)
}

func TestNewConfig_Overrides(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("BODY_LIMIT_BYTES", "2048")
	t.Setenv("SEED_DB", "yes")
	t.Setenv("LOG_FORMAT", "console")

	cfg := NewConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(2048), cfg.HTTP.BodyLimitBytes)
	assert.True(t, cfg.SeedDB)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "single", value: "*", want: []string{"*"}},
		{name: "trims spaces", value: " a , b ", want: []string{"a", "b"}},
		{name: "empty", value: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.value))
		})
	}
}

func TestParseConfigJSON(t *testing.T) {
	cfg, err := parseConfigJSON([]byte(`{"port":"9090","database":{"host":"db"},"seed_db":true}`))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.True(t, cfg.SeedDB)
	// defaults survive for keys that are absent
	assert.Equal(t, "public", cfg.HTTP.PublicDir)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.NotEmpty(t, cfg.CORS.AllowedMethods)

	_, err = parseConfigJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestParseConfigJSON_KeepsConfiguredOrigins(t *testing.T) {
	cfg, err := parseConfigJSON([]byte(`{"cors":{"allowed_origins":["https://movies.test"]}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://movies.test"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "X-Request-ID")
}

func TestNewConfig_EmptyOriginListAllowsAll(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")

	cfg := NewConfig()

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ReadsEnvironmentOffGCP(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("CONFIG_SECRET", "movies-api-config")
	t.Setenv("PORT", "4000")

	cfg, err := Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "movies", cfg.Database.Name)
}

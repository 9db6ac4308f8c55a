package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string         `json:"port"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Storage  StorageConfig  `json:"storage"`
	Log      LogConfig      `json:"log"`
	CORS     CORSConfig     `json:"cors"`
	HTTP     HTTPConfig     `json:"http"`
	SeedDB   bool           `json:"seed_db"`
}

type DatabaseConfig struct {
	Name            string        `json:"name"`
	Host            string        `json:"host"`
	Port            string        `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	SSLMode         string        `json:"ssl_mode"` // e.g., "disable", "require", "verify-ca", "verify-full"
}

// RedisConfig configures the read cache. An empty Host disables caching.
type RedisConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Password string        `json:"password"`
	DB       int           `json:"db"`
	TTL      time.Duration `json:"ttl"`
}

// Enabled reports whether a Redis server was configured
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type StorageConfig struct {
	Provider  string      `json:"provider"` // "local", "minio", "gcs"
	LocalPath string      `json:"local_path"`
	BaseURL   string      `json:"base_url"`
	GCSBucket string      `json:"gcs_bucket"`
	MinIO     MinIOConfig `json:"minio"`
}

type MinIOConfig struct {
	Endpoint       string `json:"endpoint"`
	AccessKey      string `json:"access_key"`
	SecretKey      string `json:"secret_key"`
	Bucket         string `json:"bucket"`
	UseSSL         bool   `json:"use_ssl"`
	PublicEndpoint string `json:"public_endpoint"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers"`
}

// withDefaults fills unset lists; an empty origin list allows every origin
func (c CORSConfig) withDefaults() CORSConfig {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	}
	return c
}

// HTTPConfig holds the request pipeline settings
type HTTPConfig struct {
	PublicDir      string `json:"public_dir"`
	SwaggerDocPath string `json:"swagger_doc_path"`
	BodyLimitBytes int64  `json:"body_limit_bytes"`
}

// defaultBodyLimit mirrors the 100kb limit of common body parsers
const defaultBodyLimit = 100 * 1024

func init() {
	if !isGCP {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not find or load .env file.")
		}
	}
}

func NewConfig() *Config {
	return &Config{
		Port: getOptionalSecret("PORT", "8080"),
		Database: DatabaseConfig{
			Name:            getRequiredSecret("DB_NAME"),
			Host:            getRequiredSecret("DB_HOST"),
			Port:            getRequiredSecret("DB_PORT"),
			Username:        getRequiredSecret("DB_USERNAME"),
			Password:        getRequiredSecret("DB_PASSWORD"),
			MaxOpenConns:    parseOptionalInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    parseOptionalInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: parseOptionalDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			SSLMode:         getOptionalSecret("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getOptionalSecret("REDIS_HOST", ""),
			Port:     getOptionalSecret("REDIS_PORT", "6379"),
			Password: getOptionalSecret("REDIS_PASSWORD", ""),
			DB:       parseOptionalInt("REDIS_DB", 0),
			TTL:      parseOptionalDuration("CACHE_TTL", 5*time.Minute),
		},
		Storage: StorageConfig{
			Provider:  getOptionalSecret("STORAGE_PROVIDER", "local"),
			LocalPath: getOptionalSecret("STORAGE_LOCAL_PATH", "./uploads"),
			BaseURL:   getOptionalSecret("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
			GCSBucket: getOptionalSecret("GCS_BUCKET", ""),
			MinIO: MinIOConfig{
				Endpoint:       getOptionalSecret("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey:      getOptionalSecret("MINIO_ACCESS_KEY", ""),
				SecretKey:      getOptionalSecret("MINIO_SECRET_KEY", ""),
				Bucket:         getOptionalSecret("MINIO_BUCKET", "movie-posters"),
				UseSSL:         parseOptionalBool("MINIO_USE_SSL", false),
				PublicEndpoint: getOptionalSecret("MINIO_PUBLIC_ENDPOINT", ""),
			},
		},
		Log: LogConfig{
			Level:  getOptionalSecret("LOG_LEVEL", "info"),
			Format: getOptionalSecret("LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getOptionalSecret("CORS_ALLOWED_ORIGINS", "*")),
		}.withDefaults(),
		HTTP: HTTPConfig{
			PublicDir:      getOptionalSecret("PUBLIC_DIR", "public"),
			SwaggerDocPath: getOptionalSecret("SWAGGER_DOC_PATH", "./api/swagger.yaml"),
			BodyLimitBytes: int64(parseOptionalInt("BODY_LIMIT_BYTES", defaultBodyLimit)),
		},
		SeedDB: parseOptionalBool("SEED_DB", false),
	}
}

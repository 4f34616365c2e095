package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	// AuthProviderSupabase verifies tokens against the GoTrue user endpoint.
	AuthProviderSupabase = "supabase"
	// AuthProviderJWT verifies HS256 tokens locally with the shared JWT secret.
	AuthProviderJWT = "jwt"

	StorageDriverMinIO = "minio"
	StorageDriverS3    = "s3"
)

// AuthConfig holds identity-provider settings.
type AuthConfig struct {
	Provider  string
	URL       string
	AnonKey   string
	JWTSecret string
}

// DatabaseConfig holds PostgreSQL database connection settings. URL, when
// set, is a complete connection string and wins over the discrete fields.
type DatabaseConfig struct {
	URL                string
	ApplicationName    string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Config holds settings for AWS S3 or an S3 API endpoint such as Cloudflare R2.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// StorageConfig selects and configures the object store binding.
type StorageConfig struct {
	Driver string
	MinIO  MinIOConfig
	S3     S3Config
}

// TracingConfig mirrors the standard OTEL_* variables the tracer reads.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
	Protocol    string
	Endpoint    string
	Sampler     string
	SamplerArg  string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost         string
	Port            string
	Env             string
	SentryDSN       string
	PublicBaseURL   string
	StaticDir       string
	BodyLimitMB     int
	MetadataEnabled bool
	Auth            AuthConfig
	Database        DatabaseConfig
	Storage         StorageConfig
	Tracing         TracingConfig
}

// IsDevelopment reports whether the app runs with APP_ENV=development.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:         getEnv("APP_HOST", "localhost:8080"),
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "production"),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
		PublicBaseURL:   normalizeBaseURL(getEnv("PUBLIC_BASE_URL", "")),
		StaticDir:       getEnv("STATIC_DIR", "dist"),
		BodyLimitMB:     getEnvInt("UPLOAD_BODY_LIMIT_MB", 100),
		MetadataEnabled: getEnvBool("METADATA_ENABLED", true),
		Auth: AuthConfig{
			Provider:  strings.ToLower(getEnv("AUTH_PROVIDER", AuthProviderSupabase)),
			URL:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			AnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
			JWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "cdnupload"),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverMinIO)),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				Region:    getEnv("S3_REGION", "auto"),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Bucket:    getEnv("S3_BUCKET", ""),
			},
		},
		Tracing: TracingConfig{
			Disabled:    getEnvBool("OTEL_SDK_DISABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "cdnupload"),
			Protocol:    getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")),
			Sampler:     getEnv("OTEL_TRACES_SAMPLER", "parentbased_traceidratio"),
			SamplerArg:  getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0"),
		},
	}
}

// normalizeBaseURL makes sure a non-empty base ends with a single slash so
// that public URLs can be built by plain concatenation.
func normalizeBaseURL(base string) string {
	if base == "" || strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

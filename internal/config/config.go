package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

type Server struct {
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	AllowedOrigin string
	MaxUploadSize int64
}

type DB struct {
	DbHOST         string
	DbPORT         string
	DbUSER         string
	DbPASSWORD     string
	DbNAME         string
	DbSSLMODE      string
	MigrationsPath string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	// PublicURL is the base that cover image keys are resolved against.
	PublicURL string
	KeyPrefix string
}

type Auth struct {
	JWTSecretKey        string
	RequiredRole        string
	AccessTokenDuration time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	Server Server
	DB     DB
	MinIO  MinIO
	Auth   Auth
	Log    Log
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// parseSize accepts both raw byte counts and human sizes such as "5 MiB".
func parseSize(value string, fallback int64) int64 {
	size, err := humanize.ParseBytes(value)
	if err != nil || size == 0 {
		return fallback
	}
	return int64(size)
}

func LoadServer() Server {
	return Server{
		Port:          getEnvAsInt("SERVER_PORT", 8080),
		ReadTimeout:   getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:  getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		MaxUploadSize: parseSize(getEnv("MAX_UPLOAD_SIZE", "5 MiB"), 5<<20),
	}
}

func LoadDB() DB {
	return DB{
		DbHOST:         getEnv("DB_HOST", "localhost"),
		DbPORT:         getEnv("DB_PORT", "5432"),
		DbUSER:         getEnv("DB_USER", "postgres"),
		DbPASSWORD:     getEnv("DB_PASSWORD", "password"),
		DbNAME:         getEnv("DB_NAME", "lifeblog"),
		DbSSLMODE:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
}

func LoadMinIO() MinIO {
	useSSL := getEnvBool("MINIO_USE_SSL", false)
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "cover-image"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+endpoint),
		KeyPrefix:  getEnv("COVER_IMAGE_PREFIX", "private"),
	}
}

func LoadAuth() Auth {
	return Auth{
		JWTSecretKey:        getEnv("JWT_SECRET_KEY", ""),
		RequiredRole:        getEnv("JWT_REQUIRED_ROLE", "authenticated"),
		AccessTokenDuration: getEnvDuration("ACCESS_TOKEN_DURATION", 2*time.Hour),
	}
}

func LoadLog() Log {
	return Log{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "text"),
	}
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables")
	}

	return &Config{
		Server: LoadServer(),
		DB:     LoadDB(),
		MinIO:  LoadMinIO(),
		Auth:   LoadAuth(),
		Log:    LoadLog(),
	}
}

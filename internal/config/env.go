package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Extractor modes. "external" spawns the configured extraction program,
// "native" extracts text in-process and calls the LLM directly.
const (
	ExtractorModeExternal = "external"
	ExtractorModeNative   = "native"
)

type Config struct {
	Port        string
	DatabaseURL string
	SslCertPath string

	AIAPIKey   string
	GenModel   string
	EmbedModel string
	LLMTimeout time.Duration

	UploadDir      string
	MaxUploadBytes int64

	ExtractorMode    string
	ExtractorCmd     string
	ExtractorArgs    []string
	ExtractorTimeout time.Duration

	JWTSecret string

	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SslCertPath: getEnv("SSL_CERT_PATH", ""),

		AIAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GenModel:   getEnv("GEN_MODEL", "gemini-1.5-flash"),
		EmbedModel: getEnv("EMBED_MODEL", "text-embedding-004"),
		LLMTimeout: time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 20)) * time.Second,

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 5)) << 20,

		ExtractorMode:    getEnv("EXTRACTOR_MODE", ExtractorModeExternal),
		ExtractorCmd:     getEnv("EXTRACTOR_CMD", ""),
		ExtractorArgs:    strings.Fields(getEnv("EXTRACTOR_ARGS", "")),
		ExtractorTimeout: time.Duration(getEnvInt("EXTRACTOR_TIMEOUT_SECONDS", 60)) * time.Second,

		JWTSecret: getEnv("JWT_SECRET", ""),

		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),
		BucketName:   getEnv("BUCKET_NAME", ""),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.AIAPIKey == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	if cfg.ExtractorMode != ExtractorModeExternal && cfg.ExtractorMode != ExtractorModeNative {
		log.Fatalf("EXTRACTOR_MODE must be %q or %q, got %q", ExtractorModeExternal, ExtractorModeNative, cfg.ExtractorMode)
	}
	if cfg.ExtractorMode == ExtractorModeExternal && cfg.ExtractorCmd == "" {
		log.Fatal("EXTRACTOR_CMD not set (required when EXTRACTOR_MODE=external)")
	}

	return cfg
}

// ArchiveEnabled reports whether accepted uploads should be mirrored to object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.AwsAccessKey != "" && c.AwsSecretKey != "" && c.BucketName != ""
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

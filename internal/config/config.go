package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth on /api routes.
	APIKey string

	// Uploads
	UploadDir      string
	MaxUploadBytes int64

	// Question generation
	DefaultLanguage      string
	DefaultQuestionCount int
	MaxQuestionCount     int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// CORS
	AllowedOrigins []string

	// Optional S3-compatible archive of uploaded documents.
	ArchiveBucket          string
	ArchiveEndpoint        string
	ArchiveRegion          string
	ArchiveAccessKeyID     string
	ArchiveSecretAccessKey string

	// Latency stats window
	StatsWindow time.Duration
}

// LoadDotenv reads .env files into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotenv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("QUESTGEN_API_KEY"),

		UploadDir:      envOr("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB

		DefaultLanguage:      envOr("DEFAULT_LANGUAGE", "english"),
		DefaultQuestionCount: envInt("DEFAULT_QUESTION_COUNT", 10),
		MaxQuestionCount:     envInt("MAX_QUESTION_COUNT", 200),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", false),

		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		ArchiveBucket:          os.Getenv("ARCHIVE_BUCKET"),
		ArchiveEndpoint:        os.Getenv("ARCHIVE_ENDPOINT"),
		ArchiveRegion:          envOr("ARCHIVE_REGION", "auto"),
		ArchiveAccessKeyID:     os.Getenv("ARCHIVE_ACCESS_KEY_ID"),
		ArchiveSecretAccessKey: os.Getenv("ARCHIVE_SECRET_ACCESS_KEY"),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.DefaultQuestionCount < 0 {
		cfg.DefaultQuestionCount = 10
	}
	if cfg.MaxQuestionCount <= 0 {
		cfg.MaxQuestionCount = 200
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.DefaultQuestionCount > c.MaxQuestionCount {
		return fmt.Errorf("DEFAULT_QUESTION_COUNT (%d) exceeds MAX_QUESTION_COUNT (%d)",
			c.DefaultQuestionCount, c.MaxQuestionCount)
	}
	if c.ArchiveBucket != "" && (c.ArchiveAccessKeyID == "" || c.ArchiveSecretAccessKey == "") {
		return fmt.Errorf("ARCHIVE_ACCESS_KEY_ID and ARCHIVE_SECRET_ACCESS_KEY are required when ARCHIVE_BUCKET is set")
	}
	return nil
}

// ArchiveEnabled reports whether uploads should be copied to the archive bucket.
func (c Config) ArchiveEnabled() bool {
	return c.ArchiveBucket != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

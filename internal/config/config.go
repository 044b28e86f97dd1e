package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Head finding
	HeadFinder string
	CopulaHead bool
	RulesFile  string

	// Worker pool
	WorkerCount        int
	MaxQueueSize       int
	MaxConcurrentTrees int

	// Upload limits
	MaxUploadBytes int64
	MaxTreeBytes   int64

	// Job state and result cache
	JobTTL    time.Duration
	CacheSize int

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads the environment. Variables from a .env file in the working
// directory fill in anything not already set.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("HEADTREE_API_KEY"),

		HeadFinder: envOr("HEAD_FINDER", "semantic"),
		CopulaHead: envBool("COPULA_HEAD", false),
		RulesFile:  os.Getenv("RULES_FILE"),

		WorkerCount:        envInt("WORKER_COUNT", 4),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentTrees: envInt("MAX_CONCURRENT_TREES", 8),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		MaxTreeBytes:   envInt64("MAX_TREE_BYTES", 1048576),    // 1MB

		JobTTL:    envDuration("JOB_TTL", 1*time.Hour),
		CacheSize: envInt("CACHE_SIZE", 1024),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentTrees <= 0 {
		cfg.MaxConcurrentTrees = 8
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxTreeBytes <= 0 {
		cfg.MaxTreeBytes = 1048576
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.CacheSize < 0 {
		cfg.CacheSize = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("HEADTREE_API_KEY is required")
	}
	switch c.HeadFinder {
	case "collins", "modcollins", "semantic":
	default:
		return fmt.Errorf("HEAD_FINDER must be collins, modcollins or semantic, got %q", c.HeadFinder)
	}
	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("RULES_FILE: %w", err)
		}
	}
	return nil
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

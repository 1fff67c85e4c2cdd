package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds global settings for the PhishGuard service.
// All settings can be configured via environment variables or programmatically.
type Config struct {
	// === Core Settings ===
	ListenAddr       string // HTTP listen address (default: ":8080")
	Env              string // "development" or "production"
	APIKey           string // API key for the analyze endpoint (required in production)
	MaxContentLength int    // Reject scan requests larger than this many characters

	// === Detection Engine ===
	URLDatasetPath  string // Labeled URL CSV; empty means synthetic training data
	TextDatasetPath string // Labeled text CSV; empty means synthetic training data
	LexiconPath     string // Optional YAML lexicon overlay
	TrainingSeed    int64  // RNG seed for model training (fixed for reproducibility)
	URLConcurrency  int    // Max concurrent per-URL heuristic checks per scan

	// === Infrastructure Collectors ===
	EnableCollectors bool          // TLS and RDAP lookups for URL scans
	CollectorTimeout time.Duration // Per-scan budget for collector I/O

	// === Similarity Index ===
	DisableSimilarity   bool    // Skip the known-scam similarity lookup
	SimilarityThreshold float64 // Min cosine similarity for a known-scam match

	// === Storage ===
	PostgresDSN string // Scan history store; empty disables persistence
	RedisURL    string // Rate limiting and counters; empty falls back to in-memory

	// === Rate Limiting ===
	RateLimitPerMinute int // Per-client analyze requests per minute

	// === HTTP Boundary ===
	AllowedOrigins []string // CORS allow-list; ["*"] allows any origin

	// === Logging ===
	LogLevel string // zap level: debug, info, warn, error
}

// NewDefaultConfig creates a Config with sensible defaults.
// All settings can be overridden via environment variables.
func NewDefaultConfig() *Config {
	return &Config{
		ListenAddr:       GetEnv("PHISHGUARD_LISTEN_ADDR", ":8080"),
		Env:              GetEnv("PHISHGUARD_ENV", "development"),
		APIKey:           GetEnv("PHISHGUARD_API_KEY", ""),
		MaxContentLength: clampInt(GetEnvInt("PHISHGUARD_MAX_CONTENT_LENGTH", 50000), 1, 1000000),

		URLDatasetPath:  GetEnv("PHISHGUARD_URL_DATASET", ""),
		TextDatasetPath: GetEnv("PHISHGUARD_TEXT_DATASET", ""),
		LexiconPath:     GetEnv("PHISHGUARD_LEXICON", ""),
		TrainingSeed:    int64(GetEnvInt("PHISHGUARD_TRAINING_SEED", 42)),
		URLConcurrency:  clampInt(GetEnvInt("PHISHGUARD_URL_CONCURRENCY", 8), 1, 64),

		EnableCollectors: GetEnvBool("PHISHGUARD_ENABLE_COLLECTORS", false),
		CollectorTimeout: time.Duration(GetEnvInt("PHISHGUARD_COLLECTOR_TIMEOUT_MS", 4000)) * time.Millisecond,

		DisableSimilarity:   !GetEnvBool("PHISHGUARD_ENABLE_SIMILARITY", true),
		SimilarityThreshold: clampFloat(GetEnvFloat("PHISHGUARD_SIMILARITY_THRESHOLD", 0.82), 0.5, 1.0),

		PostgresDSN: GetEnv("PHISHGUARD_POSTGRES_DSN", ""),
		RedisURL:    GetEnv("PHISHGUARD_REDIS_URL", ""),

		RateLimitPerMinute: clampInt(GetEnvInt("PHISHGUARD_RATE_LIMIT_PER_MINUTE", 60), 1, 100000),

		AllowedOrigins: GetEnvSlice("PHISHGUARD_ALLOWED_ORIGINS", []string{"*"}),

		LogLevel: GetEnv("PHISHGUARD_LOG_LEVEL", "info"),
	}
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

// clampInt ensures a value is within bounds
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// clampFloat ensures a value is within bounds
func clampFloat(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Helper functions for environment variable parsing
// These are exported for use by other packages

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

// Validate checks that all required configuration is present.
// In production mode, it returns an error when critical settings are
// missing; in development it logs warnings and allows startup.
func (c *Config) Validate() error {
	var missing []string

	if c.IsProduction() {
		if c.APIKey == "" {
			missing = append(missing, "PHISHGUARD_API_KEY (API key for analyze endpoint)")
		} else if len(c.APIKey) < 32 {
			missing = append(missing, "PHISHGUARD_API_KEY (must be at least 32 characters)")
		}
	} else if c.APIKey == "" {
		log.Printf("[STARTUP] Warning: PHISHGUARD_API_KEY not set, analyze endpoint is unauthenticated")
	}

	if c.MaxContentLength <= 0 {
		missing = append(missing, "PHISHGUARD_MAX_CONTENT_LENGTH (must be positive)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MustValidate calls Validate and fatally exits if validation fails.
// Call this at startup before starting the server.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Fatalf("[STARTUP] FATAL: Configuration validation failed: %v", err)
	}
	log.Println("[STARTUP] Configuration validated successfully")
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is read once at startup and passed by value to constructors.
// Nothing in the module reads the environment after Load returns.
type Config struct {
	Port    string
	GinMode string

	NewsAPIKey string
	NewsAPIURL string
	FetchLimit int

	SummarizerAPIKey string
	SummarizerURL    string

	DBPath string

	S3 S3Config

	RedisURL       string
	RedisRecentMax int

	KafkaBrokers []string
	KafkaTopic   string
}

// S3Config mirrors the S3_* variables. Bucket empty means archiving is off.
type S3Config struct {
	Bucket       string
	Region       string
	Profile      string
	Prefix       string
	UsePathStyle bool
}

// SQLiteEnabled reports whether DB_PATH selects a database file.
func (c Config) SQLiteEnabled() bool {
	return c.DBPath != "" && c.DBPath != DisabledDBPath
}

// Load reads .env (if present) and the process environment.
// Missing API keys are allowed; the fetcher and summarizer degrade instead.
func Load() (Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := Config{
		Port:             GetEnvOrDefault("PORT", DefaultPort),
		GinMode:          strings.TrimSpace(os.Getenv("GIN_MODE")),
		NewsAPIKey:       strings.TrimSpace(os.Getenv("NEWS_API_KEY")),
		NewsAPIURL:       GetEnvOrDefault("NEWS_API_URL", DefaultNewsAPIURL),
		SummarizerAPIKey: strings.TrimSpace(os.Getenv("HF_API_KEY")),
		SummarizerURL:    GetEnvOrDefault("HF_API_URL", DefaultSummarizerURL),
		DBPath:           GetEnvOrDefault("DB_PATH", DefaultDBPath),
		S3: S3Config{
			Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
			Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
			UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
		},
		RedisURL:   strings.TrimSpace(os.Getenv("REDIS_URL")),
		KafkaTopic: GetEnvOrDefault("KAFKA_TOPIC", DefaultKafkaTopic),
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3.Prefix = strings.Trim(prefix, "/") + "/"
	}

	var err error
	if cfg.FetchLimit, err = positiveInt("NEWS_FETCH_LIMIT", DefaultFetchLimit); err != nil {
		return Config{}, err
	}
	if cfg.RedisRecentMax, err = positiveInt("REDIS_RECENT_MAX", DefaultRedisRecentMax); err != nil {
		return Config{}, err
	}

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg, nil
}

// GetEnvOrDefault returns the trimmed value of key, or defaultVal when unset or blank.
func GetEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func positiveInt(key string, defaultVal int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return n, nil
}

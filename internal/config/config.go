package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for both binaries, assembled from
// environment variables with sensible local defaults. A .env file in the
// working directory is honored when present.
type Config struct {
	HTTPPort int

	// DBConnStr is the Postgres connection string. Empty means the
	// durable store is disabled and the service runs cache-only.
	DBConnStr string

	// ProviderBaseURL overrides the market data API root (used in tests
	// and for proxies); empty selects the public endpoint.
	ProviderBaseURL string

	// TriggerSource selects what drives collection: "timer" or "nats"
	TriggerSource   string
	CollectInterval time.Duration
	NATSURL         string
	NATSSubject     string

	// PublishInterval is the worker's schedule between trigger events
	PublishInterval time.Duration

	CacheCapacity int
}

// Load reads configuration from the environment. Values are optional; the
// defaults run a local single-process setup against localhost services.
func Load() Config {
	// Best-effort: absence of a .env file is the normal production case.
	_ = godotenv.Load()

	return Config{
		HTTPPort:        getEnvAsInt("PORT", 3000),
		DBConnStr:       postgresConnStr(),
		ProviderBaseURL: getEnv("COINGECKO_BASE_URL", ""),
		TriggerSource:   getEnv("TRIGGER_SOURCE", "timer"),
		CollectInterval: getEnvAsDuration("COLLECT_INTERVAL", 60*time.Second),
		NATSURL:         getEnv("NATS_URL", "nats://127.0.0.1:4222"),
		NATSSubject:     getEnv("NATS_SUBJECT", "crypto.update"),
		PublishInterval: getEnvAsDuration("PUBLISH_INTERVAL", 15*time.Minute),
		CacheCapacity:   getEnvAsInt("CACHE_CAPACITY", 100),
	}
}

// postgresConnStr builds the connection string from DB_CONN_STR or, when
// that is unset, from the individual DB_* variables (Docker friendly).
func postgresConnStr() string {
	if s := os.Getenv("DB_CONN_STR"); s != "" {
		return s
	}
	if os.Getenv("DB_HOST") == "" && os.Getenv("DB_NAME") == "" {
		return ""
	}
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "konix")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

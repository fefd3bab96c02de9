package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // FARM_TIMEZONE must resolve in minimal containers

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int      `validate:"min=1,max=65535"`
	APIKey         string   `validate:"required"`
	TrustedProxies []string `validate:"dive,required"`
	Environment    string   `validate:"required"`
	ServiceName    string
	Version        string

	LogLevel  string `validate:"oneof=debug info warn warning error"`
	LogFormat string `validate:"oneof=text json"`
	LogDir    string

	StorageBackend    string `validate:"oneof=postgres memory"`
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int           `validate:"min=1"`
	DBMaxConnIdleTime time.Duration `validate:"min=0"`
	DBMaxConnLifetime time.Duration `validate:"min=0"`

	// CatalogPath overrides the embedded catalog; empty uses the built-in one
	CatalogPath     string
	ConfirmTimeout  time.Duration `validate:"min=1s"`
	ConfirmCapacity int           `validate:"min=1"`
	FarmTimezone    string        `validate:"required"`
	// StealCooldown overrides the catalog theft cooldown when set
	StealCooldown *time.Duration

	EventMaxRetries     int           `validate:"min=0"`
	EventRetryDelay     time.Duration `validate:"min=0"`
	EventDeadLetterPath string

	// JournalRetention of 0 keeps journal entries forever
	JournalRetention       time.Duration `validate:"min=0"`
	JournalCleanupInterval time.Duration `validate:"min=0"`
	WorkerCount            int           `validate:"min=0"`

	ShutdownTimeout time.Duration `validate:"min=0"`

	location *time.Location
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A .env file is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName:    getEnv("SERVICE_NAME", DefaultServiceName),
		Version:        getEnv("VERSION", DefaultVersion),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:    getEnv("LOG_DIR", "logs"),

		StorageBackend:    strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendPostgres)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		CatalogPath:     getEnv("CATALOG_PATH", ""),
		ConfirmTimeout:  getEnvAsDuration("CONFIRM_TIMEOUT", DefaultConfirmTimeout),
		ConfirmCapacity: getEnvAsInt("CONFIRM_CAPACITY", DefaultConfirmCapacity),
		FarmTimezone:    getEnv("FARM_TIMEZONE", DefaultFarmTimezone),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),

		JournalRetention:       getEnvAsDuration("JOURNAL_RETENTION", DefaultJournalRetention),
		JournalCleanupInterval: getEnvAsDuration("JOURNAL_CLEANUP_INTERVAL", DefaultJournalCleanupInterval),
		WorkerCount:            getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if raw, ok := os.LookupEnv("STEAL_COOLDOWN"); ok && raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid STEAL_COOLDOWN value: %w", err)
		}
		cfg.StealCooldown = &d
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s", ErrMsgAPIKeyRequired)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads only the logging and DB_* settings. Maintenance commands
// such as migrations use it so they run without an API key.
func LoadDatabase() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),

		StorageBackend:    StorageBackendPostgres,
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
	}
}

// Location is the time zone sign-in days are counted in
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to defaultValue when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a Go duration, falling back to defaultValue when unset or malformed
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma separated variable, dropping empty items
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

package config

import "time"

// Storage backends
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// Defaults applied when the environment leaves a value unset
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "farmbot"
	DefaultVersion           = "dev"
	DefaultDBName            = "farmbot"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultConfirmTimeout    = 60 * time.Second
	DefaultConfirmCapacity   = 10000
	DefaultFarmTimezone      = "Asia/Shanghai"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultEventMaxRetries   = 5
	DefaultEventRetryDelay   = 2 * time.Second
	DefaultDeadLetterPath    = "logs/event_deadletter.jsonl"

	DefaultJournalRetention       = 30 * 24 * time.Hour
	DefaultJournalCleanupInterval = time.Hour
	DefaultWorkerCount            = 2
)

// Error messages
const (
	ErrMsgInvalidPort     = "invalid PORT value"
	ErrMsgAPIKeyRequired  = "API_KEY environment variable must be set for security"
	ErrMsgInvalidTimezone = "invalid FARM_TIMEZONE"
	ErrMsgInvalidConfig   = "invalid configuration"
)

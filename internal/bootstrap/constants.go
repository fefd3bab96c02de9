package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept when a session starts
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingFarmBot     = "Starting FarmBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Catalog and Storage
// =============================================================================

const (
	LogMsgCatalogLoaded      = "Catalog loaded"
	LogMsgStorageInitialized = "Storage initialized"
	LogMsgMemoryStorage      = "Using in-memory storage; farm state is lost on restart"
	LogMsgConfigWarning      = "Configuration warning"

	ErrMsgFailedLoadCatalog     = "failed to load catalog"
	ErrMsgFailedConnectDB       = "failed to connect to database"
	ErrMsgFailedMigrate         = "failed to apply migrations"
	ErrMsgUnknownStorageBackend = "unknown storage backend"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event journal initialized"
	LogMsgSSESubscriberRegistered    = "Live event stream registered"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event journal"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	// DefaultWorkerQueueSize bounds queued background jobs
	DefaultWorkerQueueSize = 16

	// DefaultJobTimeout bounds a single background job run
	DefaultJobTimeout = 5 * time.Minute

	// JobNameJournalCleanup names the journal retention job in logs
	JobNameJournalCleanup = "journal_cleanup"

	LogMsgJobScheduled      = "Background job scheduled"
	LogMsgJournalCleanupOff = "Journal retention disabled, cleanup not scheduled"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownSSE            = "Closing live event streams..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgShuttingDownJobs           = "Stopping background jobs..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)

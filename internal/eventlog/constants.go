package eventlog

// Activity query limits
const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
)

// Log messages - service events
const (
	LogMsgEventPayloadUndecodable = "Event payload is not a farm action, skipping log"
	LogMsgFailedToLogEvent        = "Failed to log event to journal"
	LogMsgEventLogged             = "Event logged to journal"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event journal cleanup job"
	LogMsgCleanupJobFailed    = "Event journal cleanup failed"
	LogMsgCleanupJobCompleted = "Event journal cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType         = "type"
	LogFieldUserID       = "user_id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deletedCount"
)

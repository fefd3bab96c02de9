package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Migration Constants
const (
	// GooseDialect is the SQL dialect goose generates version-table queries for
	GooseDialect = "postgres"

	// MigrationsDir is the directory inside migrations.FS holding the SQL files
	MigrationsDir = "."
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToSetDialect       = "failed to set migration dialect"
	ErrMsgFailedToApplyMigrations  = "failed to apply migrations"
	ErrMsgFailedToReadMigrations   = "failed to read migration status"
	ErrMsgFailedToGetSchemaVersion = "failed to get schema version"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)

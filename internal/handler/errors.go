package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"
	ErrMsgUnknownOperation  = "Unknown operation"

	// Storage faults never leak their cause
	ErrMsgTryAgain = "The farm is busy right now. Please try again."
)

// Log messages
const (
	LogMsgRequestReceived  = "Farm request received"
	LogMsgOperationFailed  = "Farm operation failed"
	LogMsgOperationOutcome = "Farm operation finished"
	LogMsgReadinessFailed  = "Readiness check failed"
)

package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every farm metric
const Namespace = "farmbot"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Farm metric names
const (
	MetricNameOperationOutcomes = "operation_outcomes_total"
	MetricNameSeedsBought       = "seeds_bought_total"
	MetricNameSeedsSown         = "seeds_sown_total"
	MetricNameCropsHarvested    = "crops_harvested_total"
	MetricNameCropsSold         = "crops_sold_total"
	MetricNameCropsStolen       = "crops_stolen_total"
	MetricNamePlotsReclaimed    = "plots_reclaimed_total"
	MetricNamePlotsUpgraded     = "plots_upgraded_total"
	MetricNameSignIns           = "signins_total"
	MetricNameUsersRegistered   = "users_registered_total"
	MetricNameCurrencyEarned    = "currency_earned_total"
	MetricNameCurrencySpent     = "currency_spent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of farm events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Farm metric help text
const (
	HelpTextOperationOutcomes = "Farm operations by outcome"
	HelpTextSeedsBought       = "Seed units bought in the shop"
	HelpTextSeedsSown         = "Plots sown"
	HelpTextCropsHarvested    = "Crop units harvested by plot owners"
	HelpTextCropsSold         = "Crop units sold"
	HelpTextCropsStolen       = "Crop units stolen from other users"
	HelpTextPlotsReclaimed    = "Plots added through reclamation"
	HelpTextPlotsUpgraded     = "Plot level increases"
	HelpTextSignIns           = "Daily sign-ins claimed"
	HelpTextUsersRegistered   = "Users registered"
	HelpTextCurrencyEarned    = "Currency entering the economy from sales and rewards"
	HelpTextCurrencySpent     = "Currency leaving the economy through purchases"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelCrop      = "crop"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
)

// UnmatchedRoute labels requests that no route matched
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)

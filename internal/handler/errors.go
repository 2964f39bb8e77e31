package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter: %s"

	ErrMsgPresetAndConfig = "Use either preset or config, not both"
	ErrMsgNoScenarios     = "No projection scenarios to compare"
	ErrMsgNameAndScenario = "Use either name or scenario, not both"
	ErrMsgNameOrScenario  = "Either name or scenario is required"
)

// Operation names used in logs
const (
	OpSimulate           = "Simulate"
	OpValidateProjection = "Validate projection"
	OpCompareProjections = "Compare projections"
)

// Query parameter values
const (
	QueryDetail   = "detail"
	DetailFull    = "full"
	DetailSummary = "summary"
	QueryCache    = "cache"
	CacheBypass   = "bypass"
)

// Readiness messages
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	MsgScenariosNotLoaded   = "projection scenarios not loaded"
)

package middleware

// HTTP header names
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
)

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"

// MaxRequestIDLength bounds caller-supplied request IDs
const MaxRequestIDLength = 128

// QuietPathPrefixes are probe and scrape paths that are not access-logged
var QuietPathPrefixes = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Log messages
const (
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
)

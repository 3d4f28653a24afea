// File: internal/common/context_keys.go
package common

const (
	// AccessTokenHeader carries the caller's Discord OAuth bearer token.
	AccessTokenHeader = "access-token"
	// AccessTokenKey is the gin context key the token is stored under once present.
	AccessTokenKey = "accessToken"
	// RequestIDHeader is the header name for request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the key for storing request ID in the gin context
	RequestIDKey = "requestID"
	// LoggerKey holds the request-scoped *zap.Logger
	LoggerKey = "logger"
)

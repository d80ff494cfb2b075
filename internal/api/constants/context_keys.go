package constants

// Context keys set by middleware
const (
	ContextKeyUser      = "user"
	ContextKeyUserID    = "userID"
	ContextKeyRequestID = "requestID"

	// Request clock: one instant and its period label per request
	ContextKeyNow    = "requestNow"
	ContextKeyPeriod = "requestPeriod"
)

const HeaderRequestID = "X-Request-ID"

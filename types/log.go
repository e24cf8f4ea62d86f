package types

import "time"

// LogEntry represents a request log entry queued for the async logger.
type LogEntry struct {
	ID              uint
	Method          string
	URL             string
	ClientIP        string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	CreatedAt       time.Time
}

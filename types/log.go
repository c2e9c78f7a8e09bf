package types

import "time"

// LogEntry is one request/response pair queued for the async logger. Bodies
// are sanitized before they get here; the logger only persists.
type LogEntry struct {
	ID              uint
	Method          string
	URL             string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	CreatedAt       time.Time
}

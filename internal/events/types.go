package events

import "time"

// Type represents the type of event broadcast to stream clients.
type Type string

const (
	// TypeFormat is emitted after a number/money formatting call.
	TypeFormat Type = "format"
	// TypeMask is emitted after a mask match call.
	TypeMask Type = "mask"
	// TypeRequestLog is emitted for every completed HTTP request.
	TypeRequestLog Type = "request_log"
	// TypeConnection is emitted when a stream client connects or leaves.
	TypeConnection Type = "connection"
)

// Event is the envelope sent to stream clients.
type Event struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Data      any       `json:"data"`
}

// FormatEvent describes a formatting call.
type FormatEvent struct {
	Kind       string  `json:"kind"` // money, number, unformat
	Value      float64 `json:"value"`
	Result     string  `json:"result,omitempty"`
	UsedFormat string  `json:"used_format,omitempty"`
}

// MaskEvent describes a mask match call. The raw input never leaves the
// engine; only the already-safe views are broadcast.
type MaskEvent struct {
	Kind        string `json:"kind"` // match, phone, date, number
	Masked      string `json:"masked"`
	Obfuscated  string `json:"obfuscated"`
	Placeholder string `json:"placeholder"`
	Valid       bool   `json:"valid"`
}

// RequestLogEvent describes a completed HTTP request.
type RequestLogEvent struct {
	RequestID  string        `json:"request_id"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	StatusCode int           `json:"status_code"`
	ClientIP   string        `json:"client_ip"`
	Duration   time.Duration `json:"duration"`
}

// ConnectionEvent describes stream client churn.
type ConnectionEvent struct {
	Action   string `json:"action"` // connected, disconnected
	ClientID string `json:"client_id"`
	ClientIP string `json:"client_ip"`
}

// HubStats tracks hub counters.
type HubStats struct {
	TotalConnections  int64 `json:"total_connections"`
	ActiveConnections int64 `json:"active_connections"`
	TotalBroadcasts   int64 `json:"total_broadcasts"`
	DroppedEvents     int64 `json:"dropped_events"`
}

package dto

import "time"

// SecurityEvent is one immutable entry in the in-memory security log.
type SecurityEvent struct {
	Timestamp time.Time              `json:"timestamp"`
	EventType string                 `json:"event_type"`
	Level     string                 `json:"level"`
	UserID    string                 `json:"user_id,omitempty"`
	UserEmail string                 `json:"user_email,omitempty"`
	IPAddress string                 `json:"ip_address,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	Endpoint  string                 `json:"endpoint,omitempty"`
	Method    string                 `json:"method,omitempty"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// SecurityEventMeta carries the request-scoped identifiers a caller attaches
// to an event. Zero values are simply omitted from the entry.
type SecurityEventMeta struct {
	UserID    string
	UserEmail string
	IPAddress string
	UserAgent string
	Endpoint  string
	Method    string
	Extra     map[string]interface{}
}

package dto

import "time"

// RateLimitResult is the outcome of a single fixed-window admission check.
type RateLimitResult struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetTime time.Time `json:"reset_time"`
}

// RateLimitExceededResponse is the 429 body seen by throttled callers.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter"`
}

type RateLimitStats struct {
	TrackedIdentifiers int                    `json:"tracked_identifiers"`
	Configs            map[string]interface{} `json:"configs"`
	Timestamp          time.Time              `json:"timestamp"`
}

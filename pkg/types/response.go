// Package types defines the JSON envelopes shared by every register
// API response. The till UI keys off the top-level data and error
// shapes, so handlers never write bare payloads.
package types

// SuccessEnvelope wraps a successful response body. Table fetches,
// snapshot reads and queue status all arrive under the same data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Code is one of the
// register's stable error codes; Details carries field-level context
// only when the code permits exposing it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError for transport.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

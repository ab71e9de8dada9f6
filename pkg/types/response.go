// Package types holds wire-level shapes shared by the API layer and
// domain services.
package types

// SuccessEnvelope wraps every successful JSON response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing shape of a coded error. Details is
// populated for validation failures (missing fields, state conflicts)
// and omitted otherwise.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every error JSON response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

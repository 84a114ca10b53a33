// Package dto holds the HTTP response envelopes shared by handlers and middleware.
package dto

// ErrorResponse is the body of every failed request. Error is a string, or
// a list of strings when business validation fails.
type ErrorResponse struct {
	Error any    `json:"error"`
	Code  string `json:"code"`
}

// NewErrorResponse creates an error body with a single message
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code}
}

// NewValidationErrorResponse creates an error body listing every reason
func NewValidationErrorResponse(reasons []string) ErrorResponse {
	if reasons == nil {
		reasons = []string{}
	}
	return ErrorResponse{Error: reasons, Code: ErrCodeValidation}
}

// MessageResponse acknowledges an action that returns no resource
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

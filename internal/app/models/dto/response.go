package dto

import (
	"time"
)

// APIResponse is the standard response envelope. Every exit path of the
// sharing pipeline is a value shaped like this; handlers never let raw
// faults propagate past the controller boundary.
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse creates a success envelope around data
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a simple message-only success body
type SuccessResponse struct {
	Message string `json:"message"`
}

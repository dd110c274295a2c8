package dto

import "net/http"

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// NewAPIResponse builds an envelope; success follows the status code.
func NewAPIResponse(statusCode int, data any, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	}
}

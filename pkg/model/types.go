package model

import "net/http"

// ErrorResponse is the JSON body for every error returned by the API
type ErrorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// NewErrorResponse builds an error body using the standard status text when message is empty
func NewErrorResponse(status int, message string) ErrorResponse {
	if message == "" {
		message = http.StatusText(status)
	}
	return ErrorResponse{
		Status:  status,
		Message: message,
	}
}

// InternalServerError is the fixed body returned for any unhandled error
var InternalServerError = ErrorResponse{
	Status:  http.StatusInternalServerError,
	Message: "Internal Server Error",
}

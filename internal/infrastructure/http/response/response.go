package response

import (
	"encoding/json"
	"net/http"
)

type Status string

const (
	StatusError              Status = "error"
	StatusValidationError    Status = "validation_error"
	StatusNotFound           Status = "not_found"
	StatusTooManyRequests    Status = "too_many_requests"
	StatusInternalError      Status = "internal_error"
	StatusServiceUnavailable Status = "service_unavailable"
)

type BaseResponse struct {
	Message string `json:"message,omitempty"`
}

type DataResponse[T any] struct {
	BaseResponse
	Data T `json:"data"`
}

// ErrorResponse is the error envelope. Toast carries the text the page
// should show when it differs from Message.
type ErrorResponse struct {
	BaseResponse
	Error  string            `json:"error,omitempty"`
	Code   Status            `json:"code,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
	Toast  string            `json:"toast,omitempty"`
}

func Success[T any](data T, message ...string) *DataResponse[T] {
	resp := &DataResponse[T]{Data: data}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	return resp
}

func Error(status Status, message string, errorDetails ...string) *ErrorResponse {
	resp := &ErrorResponse{
		BaseResponse: BaseResponse{Message: message},
		Code:         status,
	}
	if len(errorDetails) > 0 {
		resp.Error = errorDetails[0]
	}
	return resp
}

func ValidationError(message string, errors map[string]string) *ErrorResponse {
	resp := Error(StatusValidationError, message)
	resp.Errors = errors
	return resp
}

func WriteJSON(w http.ResponseWriter, statusCode int, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

func WriteSuccess[T any](w http.ResponseWriter, data T, message ...string) {
	WriteJSON(w, http.StatusOK, Success(data, message...))
}

func WriteError(w http.ResponseWriter, statusCode int, status Status, message string, errorDetails ...string) {
	WriteJSON(w, statusCode, Error(status, message, errorDetails...))
}

// WriteValidationError answers a malformed request body or parameter.
func WriteValidationError(w http.ResponseWriter, message string, errors map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ValidationError(message, errors))
}

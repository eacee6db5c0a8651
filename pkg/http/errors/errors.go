package errors

import (
	"encoding/json"
	"net/http"
)

// Client-facing messages. Internal detail never goes into the envelope.
const (
	MessageBadRequest    = "bad request"
	MessageNotFound      = "resource not found"
	MessageUnprocessable = "unprocessable"
	MessageInternal      = "internal server error"
	MessageNotAllowed    = "method not allowed"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// Message returns the envelope message for an HTTP status.
func Message(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MessageBadRequest
	case http.StatusNotFound:
		return MessageNotFound
	case http.StatusMethodNotAllowed:
		return MessageNotAllowed
	case http.StatusUnprocessableEntity:
		return MessageUnprocessable
	default:
		return MessageInternal
	}
}

// RespondError writes {success:false, error:<status>, message} with the status code.
func RespondError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: Message(status),
	})
}

// RespondBadRequest writes a 400 envelope.
func RespondBadRequest(w http.ResponseWriter) {
	RespondError(w, http.StatusBadRequest)
}

// RespondNotFound writes a 404 envelope.
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound)
}

// RespondUnprocessable writes a 422 envelope.
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity)
}

// Package response writes the JSON envelope every API endpoint returns:
//
//	{"message": "...", "data": ..., "error": "...", "errors": [...]}
//
// message is always present; the other keys only when set.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/bizapi/pkg/validate"
)

// Body is the response envelope.
type Body struct {
	Message string          `json:"message"`
	Data    interface{}     `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Errors  validate.Issues `json:"errors,omitempty"`
}

// Write sends body with the given status.
func Write(w http.ResponseWriter, status int, body Body) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// OK sends a 200 with a message and data.
func OK(w http.ResponseWriter, message string, data interface{}) {
	Write(w, http.StatusOK, Body{Message: message, Data: data})
}

// Created sends a 201 with a message and the created record.
func Created(w http.ResponseWriter, message string, data interface{}) {
	Write(w, http.StatusCreated, Body{Message: message, Data: data})
}

// Message sends a body carrying only a message.
func Message(w http.ResponseWriter, status int, message string) {
	Write(w, status, Body{Message: message})
}

// Fail sends a message plus the error text.
func Fail(w http.ResponseWriter, status int, message string, err error) {
	body := Body{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	Write(w, status, body)
}

// ValidationFailed sends a 400 with the ordered list of issues.
func ValidationFailed(w http.ResponseWriter, issues validate.Issues) {
	Write(w, http.StatusBadRequest, Body{Message: "Validation Failed", Errors: issues})
}

// InvalidJSON sends a 400 for a body that could not be decoded.
func InvalidJSON(w http.ResponseWriter, err error) {
	Fail(w, http.StatusBadRequest, "Invalid JSON", err)
}

// DatabaseError sends a 500 for a failed store operation.
func DatabaseError(w http.ResponseWriter, err error) {
	Fail(w, http.StatusInternalServerError, "Database Error", err)
}

// NotFound sends a 404 with the given message.
func NotFound(w http.ResponseWriter, message string) {
	Message(w, http.StatusNotFound, message)
}

// Package response provides utilities for sending consistent HTTP responses.
// Every payload is wrapped in the same envelope the SPA consumes:
// {success, data, message, errors}, field names in lowerCamelCase.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the uniform response wrapper for all API endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message *string     `json:"message"`
	Errors  []string    `json:"errors"`
}

// JSON sends an arbitrary envelope with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// Logs encoding errors but does not fail the response.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// Success sends a 200 envelope carrying the given payload.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// SuccessMessage sends a 200 envelope with a message and no payload.
func SuccessMessage(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: &message})
}

// Error sends a failure envelope with the given status code.
// The message should be a user-facing error description.
//
// Example:
//
//	response.Error(w, http.StatusBadRequest, "query parameter is required")
//	response.Error(w, http.StatusNotFound, "stock quote not found for symbol: AAPL")
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: &message})
}

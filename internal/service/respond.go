// Package service exposes the settlement engine and the log pipeline over
// JSON HTTP, matching the request and response shapes of the surrounding
// expense-sharing API.
package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// failureBody is the error shape the existing API consumers expect.
type failureBody struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeFailure(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, failureBody{Status: "failure", Reason: reason})
}

// decodeJSON decodes the request body into v, answering with a 400 failure
// on malformed input. Returns false if the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/mmcdole/campus-transit/pkg/logging"
)

// errorBody is the shape of every error response
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logging.App.Debug("Failed to write response", "error", err)
		}
	}
}

// writeError sends message as is; it is already user facing
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeInternalError(w http.ResponseWriter, err error) {
	logging.App.Error("Request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// maxBodyBytes bounds form submissions
const maxBodyBytes = 1 << 16

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

func writeErrorWithDetails(w http.ResponseWriter, status int, message string, details interface{}) {
	writeJSON(w, status, map[string]interface{}{
		"error":   message,
		"details": details,
	})
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return decoder.Decode(v)
}

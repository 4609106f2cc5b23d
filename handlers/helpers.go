package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mindcare/support-chat/types"
)

// maxBodyBytes caps request bodies; chat histories are the largest.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeErrorDetails(w, message, "", status)
}

func writeErrorDetails(w http.ResponseWriter, message, details string, status int) {
	resp := types.ErrorResponse{
		Success:      false,
		ErrorMessage: message,
		ErrorDetails: details,
	}
	writeJSON(w, status, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// queryInt reads a positive integer query parameter, clamped to max.
func queryInt(r *http.Request, name string, fallback, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n > max {
		n = max
	}
	return n, true
}

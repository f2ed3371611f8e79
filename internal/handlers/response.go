package handlers

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error   string          `json:"error"`
	Message string          `json:"message,omitempty"`
	Missing []string        `json:"missing,omitempty"`
	Have    map[string]bool `json:"have,omitempty"`
}

// writeJSON marshals v and writes it with status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal_server_error"}`)
	}
	writeRaw(w, status, body)
}

// writeRaw writes body as-is under a JSON content type, whether or not it
// actually is JSON.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

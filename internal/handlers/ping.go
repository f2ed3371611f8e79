package handlers

import (
	"net/http"
	"time"

	"astro-proxy/internal/astro"
	"astro-proxy/pkg/logging"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type pingResponse struct {
	OK      bool            `json:"ok"`
	Service string          `json:"service"`
	Env     map[string]bool `json:"env"`
	Time    string          `json:"time"`
}

// PingHandler serves the liveness probe.
type PingHandler struct {
	Credentials astro.Credentials
	Now         func() time.Time
}

func NewPingHandler(creds astro.Credentials) *PingHandler {
	return &PingHandler{Credentials: creds, Now: time.Now}
}

// Ping handles GET /ping. It reports which credentials are present, never
// their values.
func (h *PingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	writeJSON(w, http.StatusOK, pingResponse{
		OK:      true,
		Service: logging.ServiceName,
		Env:     h.Credentials.Presence(),
		Time:    now().UTC().Format(isoMillis),
	})
}

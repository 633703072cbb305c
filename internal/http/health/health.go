package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Path is the only route served by the handler.
const Path = "/health"

// Payload is the liveness response body.
type Payload struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    int64  `json:"time"`
}

// Handler answers GET /health and 404s everything else with an empty body.
type Handler struct {
	service string
	now     func() time.Time
	last    atomic.Int64
}

// New returns a health handler reporting the given service name.
func New(service string) *Handler {
	return &Handler{service: service, now: time.Now}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != Path || r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, err := json.Marshal(Payload{OK: true, Service: h.service, Time: h.millis()})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// millis returns epoch milliseconds that never go backwards.
func (h *Handler) millis() int64 {
	now := h.now().UnixMilli()
	for {
		last := h.last.Load()
		if now <= last {
			return last
		}
		if h.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

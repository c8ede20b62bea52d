// Package status serves the health and Prometheus metrics endpoints.
package status

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/accessly/a11ybot/pkg/logger"
)

// Info is reported by the /healthz endpoint.
type Info struct {
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	StartedAt time.Time `json:"started_at"`
}

// Start serves /healthz and /metrics on addr in a background
// goroutine. Returns immediately; a failed listen is logged, not
// fatal, since the endpoint is purely observational.
func Start(addr string, info Info) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     "ok",
			"provider":   info.Provider,
			"model":      info.Model,
			"started_at": info.StartedAt,
			"uptime":     time.Since(info.StartedAt).String(),
		})
	})

	go func() {
		logger.InfoCF("status", "Serving status endpoints", map[string]interface{}{
			"addr": addr,
		})
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.ErrorCF("status", "Status server stopped", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

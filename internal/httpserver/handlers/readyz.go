package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
	"github.com/MrSnakeDoc/comments/internal/logger"
)

const readyzTimeout = 2 * time.Second

type readyzResponse struct {
	Ready         bool    `json:"ready"`
	Store         string  `json:"store"`
	Error         string  `json:"error,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
}

// Readyz reports whether the document store answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{
			Ready:         true,
			Store:         d.StoreBackend,
			UptimeSeconds: time.Since(d.StartTime).Seconds(),
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
		}

		status := http.StatusOK
		if err := checkStore(r.Context(), d); err != nil {
			d.Logger.Warn("store not ready",
				logger.String("store", d.StoreBackend),
				logger.Error(err))
			resp.Ready = false
			resp.Error = "store unavailable"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, status, resp, d.Logger)
	}
}

func checkStore(parent context.Context, d deps.Deps) error {
	if d.Store == nil {
		return errStoreNotInitialized
	}

	ctx, cancel := context.WithTimeout(parent, readyzTimeout)
	defer cancel()

	return d.Store.Ping(ctx)
}

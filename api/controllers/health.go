package controllers

import (
	"net/http"
	"time"

	"github.com/abenezer-t/bizpredict-backend/api/responses"
	"github.com/abenezer-t/bizpredict-backend/internal/analytics"
	"github.com/abenezer-t/bizpredict-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BizPredict-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports dataset and model readiness. Not-ready answers 503 so
// probes hold traffic until startup training finished.
func HealthReady(cfg *config.Config, service analytics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BizPredict-Env", cfg.App.Env)

		status := "ready"
		code := http.StatusOK
		readiness := analytics.ReadinessStatus{}
		if service != nil {
			readiness = service.Readiness()
		}
		if service == nil || !readiness.DataLoaded || !readiness.ModelTrained {
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, code, map[string]any{
			"status":        status,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
			"data_loaded":   readiness.DataLoaded,
			"model_trained": readiness.ModelTrained,
		})
	}
}

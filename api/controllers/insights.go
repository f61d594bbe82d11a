package controllers

import (
	"net/http"

	"github.com/abenezer-t/bizpredict-backend/api/responses"
	"github.com/abenezer-t/bizpredict-backend/internal/analytics"
	"github.com/abenezer-t/bizpredict-backend/pkg/logger"
)

// Insights serves the rule engine findings, including the forecast
// divergence insight from the global model.
func Insights(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		findings, err := service.Insights(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, findings)
	}
}

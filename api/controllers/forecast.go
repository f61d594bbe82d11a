package controllers

import (
	"net/http"

	"github.com/abenezer-t/bizpredict-backend/api/responses"
	"github.com/abenezer-t/bizpredict-backend/api/validators"
	"github.com/abenezer-t/bizpredict-backend/internal/analytics"
	"github.com/abenezer-t/bizpredict-backend/pkg/logger"
)

// Forecast generates a sales forecast. An unfiltered request serves the
// global model; category/region filters train a private model per request.
func Forecast(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req analytics.ForecastRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.Forecast(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

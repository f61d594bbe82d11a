package controllers

import (
	"net/http"

	"github.com/abenezer-t/bizpredict-backend/api/responses"
	"github.com/abenezer-t/bizpredict-backend/api/validators"
	"github.com/abenezer-t/bizpredict-backend/internal/analytics"
	"github.com/abenezer-t/bizpredict-backend/pkg/enums"
	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
	"github.com/abenezer-t/bizpredict-backend/pkg/logger"
)

// Trends serves bucketed sales sums; ?period=daily|weekly|monthly,
// defaulting to monthly.
func Trends(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		period, err := enums.ParseTrendPeriod(validators.QueryString(r, "period"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period"))
			return
		}

		result, err := service.Trends(ctx, analytics.TrendsRequest{Period: period})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Historical serves the filtered daily history;
// ?start_date=&end_date=&category= are all optional.
func Historical(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		start, err := validators.QueryDate(r, "start_date")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		end, err := validators.QueryDate(r, "end_date")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !start.IsZero() && !end.IsZero() && end.Before(start) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "end_date before start_date"))
			return
		}

		result, err := service.Historical(ctx, analytics.HistoricalRequest{
			Start:    start,
			End:      end,
			Category: validators.QueryString(r, "category"),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

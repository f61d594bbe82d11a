package analytics

import (
	"context"
	"math"

	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	"github.com/abenezer-t/bizpredict-backend/internal/forecast"
	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
)

// ForecastRequest selects the horizon and an optional filtered subseries.
type ForecastRequest struct {
	Periods  int    `json:"periods" validate:"omitempty,min=1,max=365"`
	Category string `json:"category,omitempty"`
	Region   string `json:"region,omitempty"`
}

// ForecastMetrics is the metric block of a forecast response: holdout
// accuracy plus horizon summary figures.
type ForecastMetrics struct {
	MAE           float64 `json:"mae"`
	MAPE          float64 `json:"mape"`
	TotalForecast float64 `json:"total_forecast"`
	AvgDaily      float64 `json:"avg_daily"`
}

// ForecastResponse carries parallel arrays per forecast day.
type ForecastResponse struct {
	Dates       []string        `json:"dates"`
	Predictions []float64       `json:"predictions"`
	LowerBound  []float64       `json:"lower_bound"`
	UpperBound  []float64       `json:"upper_bound"`
	Metrics     ForecastMetrics `json:"metrics"`
}

// Forecast serves the global model for unfiltered requests. Filtered
// requests train an independent throwaway model on the filtered subseries;
// the global model and filtered models are never shared.
func (s *service) Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}

	periods := req.Periods
	if periods == 0 {
		periods = s.cfg.DefaultPeriods
	}
	if periods < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "periods must be positive")
	}

	model := s.model
	if req.Category != "" || req.Region != "" {
		filtered, err := s.trainFiltered(ctx, req)
		if err != nil {
			return nil, err
		}
		model = filtered
	}
	if model == nil {
		return nil, pkgerrors.New(pkgerrors.CodeModelNotTrained, "model not trained")
	}

	result, err := model.Forecast(periods)
	if err != nil {
		return nil, err
	}
	eval, err := model.Evaluate()
	if err != nil {
		return nil, err
	}

	return &ForecastResponse{
		Dates:       result.Dates(),
		Predictions: round2Slice(result.Points()),
		LowerBound:  round2Slice(result.Lowers()),
		UpperBound:  round2Slice(result.Uppers()),
		Metrics: ForecastMetrics{
			MAE:           eval.MAE,
			MAPE:          eval.MAPE,
			TotalForecast: result.Total(),
			AvgDaily:      result.Mean(),
		},
	}, nil
}

func (s *service) trainFiltered(ctx context.Context, req ForecastRequest) (*forecast.Model, error) {
	filter := dataset.Filter{Category: req.Category, Region: req.Region}
	series, err := s.table.DailySeries(filter)
	if err != nil {
		return nil, err
	}

	minObs := s.cfg.MinFilteredObs
	if minObs < 1 {
		minObs = 14
	}
	if len(series) < minObs {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyFilter, "not enough data in range to fit a model").
			WithDetails(map[string]any{
				"observations": len(series),
				"minimum":      minObs,
			})
	}

	if s.logg != nil {
		scope := req.Category
		if scope == "" {
			scope = req.Region
		} else if req.Region != "" {
			scope += "/" + req.Region
		}
		s.logg.Info(s.logg.WithModel(ctx, scope), "training filtered forecast model")
	}

	return forecast.Train(series, forecastConfig(s.cfg))
}

func round2Slice(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Round(v*100) / 100
	}
	return out
}

package analytics

import (
	"context"

	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	"github.com/abenezer-t/bizpredict-backend/internal/forecast"
	"github.com/abenezer-t/bizpredict-backend/internal/insights"
	"github.com/abenezer-t/bizpredict-backend/pkg/config"
	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
	"github.com/abenezer-t/bizpredict-backend/pkg/logger"
)

// Service exposes every analytics operation the API serves. It is an
// immutable context object: the table and global model are built once at
// startup and shared read-only, so concurrent handlers need no locking.
type Service interface {
	Readiness() ReadinessStatus
	Stats(ctx context.Context) (*dataset.OverallStats, error)
	Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error)
	Insights(ctx context.Context) ([]insights.Insight, error)
	ProductStats(ctx context.Context) ([]dataset.GroupStat, error)
	RegionStats(ctx context.Context) ([]dataset.GroupStat, error)
	SegmentStats(ctx context.Context) ([]dataset.GroupStat, error)
	Categories(ctx context.Context) ([]string, error)
	Trends(ctx context.Context, req TrendsRequest) (*TrendsResponse, error)
	Historical(ctx context.Context, req HistoricalRequest) (*HistoricalResponse, error)
}

type service struct {
	table *dataset.Table
	model *forecast.Model
	cfg   config.ForecastConfig
	logg  *logger.Logger
}

// NewService builds the shared context object and trains the global model.
// Startup is all-or-nothing: a training failure fails service construction.
func NewService(table *dataset.Table, cfg config.ForecastConfig, logg *logger.Logger) (Service, error) {
	if table == nil || table.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDataNotLoaded, "transaction table required")
	}

	series, err := table.DailySeries(dataset.Filter{})
	if err != nil {
		return nil, err
	}

	model, err := forecast.Train(series, forecastConfig(cfg))
	if err != nil {
		return nil, err
	}

	if logg != nil {
		ctx := logg.WithFields(context.Background(), map[string]any{
			"transactions": table.Len(),
			"series_days":  len(series),
			"holdout_days": model.HoldoutLen(),
		})
		logg.Info(ctx, "global forecast model trained")
	}

	return &service{
		table: table,
		model: model,
		cfg:   cfg,
		logg:  logg,
	}, nil
}

// ReadinessStatus reports what the health endpoint exposes.
type ReadinessStatus struct {
	DataLoaded   bool `json:"data_loaded"`
	ModelTrained bool `json:"model_trained"`
}

func (s *service) Readiness() ReadinessStatus {
	return ReadinessStatus{
		DataLoaded:   s.table != nil && s.table.Len() > 0,
		ModelTrained: s.model != nil,
	}
}

func (s *service) Stats(ctx context.Context) (*dataset.OverallStats, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}
	stats := s.table.OverallStats()
	return &stats, nil
}

func (s *service) Insights(ctx context.Context) ([]insights.Insight, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}
	if s.model == nil {
		return nil, pkgerrors.New(pkgerrors.CodeModelNotTrained, "model not trained")
	}

	periods := s.cfg.DefaultPeriods
	if periods < 1 {
		periods = 90
	}
	fc, err := s.model.Forecast(periods)
	if err != nil {
		return nil, err
	}
	return insights.Generate(s.table, fc), nil
}

func (s *service) ProductStats(ctx context.Context) ([]dataset.GroupStat, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}
	return s.table.ProductStats(), nil
}

func (s *service) RegionStats(ctx context.Context) ([]dataset.GroupStat, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}
	return s.table.RegionStats(), nil
}

func (s *service) SegmentStats(ctx context.Context) ([]dataset.GroupStat, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}
	return s.table.SegmentStats(), nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}
	return s.table.Categories(), nil
}

func (s *service) requireData() error {
	if s.table == nil || s.table.Len() == 0 {
		return pkgerrors.New(pkgerrors.CodeDataNotLoaded, "dataset not loaded")
	}
	return nil
}

func forecastConfig(cfg config.ForecastConfig) forecast.Config {
	out := forecast.DefaultConfig()
	if cfg.HoldoutDays > 0 {
		out.HoldoutDays = cfg.HoldoutDays
	}
	if cfg.ChangepointPriorScale > 0 {
		out.ChangepointPriorScale = cfg.ChangepointPriorScale
	}
	return out
}

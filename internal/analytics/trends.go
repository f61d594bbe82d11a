package analytics

import (
	"context"
	"math"
	"time"

	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	"github.com/abenezer-t/bizpredict-backend/pkg/enums"
)

// TrendsRequest selects the bucketing granularity.
type TrendsRequest struct {
	Period enums.TrendPeriod
}

// TrendsResponse carries parallel period labels and sales sums.
type TrendsResponse struct {
	Periods []string  `json:"periods"`
	Sales   []float64 `json:"sales"`
}

func (s *service) Trends(ctx context.Context, req TrendsRequest) (*TrendsResponse, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}

	period := req.Period
	if period == "" {
		period = enums.TrendPeriodMonthly
	}

	points := s.table.Trends(period)
	resp := &TrendsResponse{
		Periods: make([]string, len(points)),
		Sales:   make([]float64, len(points)),
	}
	for i, p := range points {
		resp.Periods[i] = p.Period
		resp.Sales[i] = p.Sales
	}
	return resp, nil
}

// HistoricalRequest filters the daily history.
type HistoricalRequest struct {
	Start    time.Time
	End      time.Time
	Category string
}

// HistoricalResponse carries parallel dates and daily sales sums.
type HistoricalResponse struct {
	Dates []string  `json:"dates"`
	Sales []float64 `json:"sales"`
}

func (s *service) Historical(ctx context.Context, req HistoricalRequest) (*HistoricalResponse, error) {
	if err := s.requireData(); err != nil {
		return nil, err
	}

	series, err := s.table.DailySeries(dataset.Filter{
		Start:    req.Start,
		End:      req.End,
		Category: req.Category,
	})
	if err != nil {
		return nil, err
	}

	resp := &HistoricalResponse{
		Dates: make([]string, len(series)),
		Sales: make([]float64, len(series)),
	}
	for i, p := range series {
		resp.Dates[i] = p.Date.Format("2006-01-02")
		resp.Sales[i] = math.Round(p.Value*100) / 100
	}
	return resp, nil
}

package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abenezer-t/bizpredict-backend/internal/analytics"
	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	"github.com/abenezer-t/bizpredict-backend/internal/insights"
	"github.com/abenezer-t/bizpredict-backend/pkg/config"
	"github.com/abenezer-t/bizpredict-backend/pkg/enums"
	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
	"github.com/abenezer-t/bizpredict-backend/pkg/logger"
)

// fakeAnalyticsService returns canned payloads; err, when set, overrides
// every operation.
type fakeAnalyticsService struct {
	err       error
	readiness analytics.ReadinessStatus

	stats      *dataset.OverallStats
	forecast   *analytics.ForecastResponse
	insights   []insights.Insight
	groupStats []dataset.GroupStat
	categories []string
	trends     *analytics.TrendsResponse
	historical *analytics.HistoricalResponse

	lastForecastReq   analytics.ForecastRequest
	lastTrendsReq     analytics.TrendsRequest
	lastHistoricalReq analytics.HistoricalRequest
}

func (f *fakeAnalyticsService) Readiness() analytics.ReadinessStatus {
	return f.readiness
}

func (f *fakeAnalyticsService) Stats(ctx context.Context) (*dataset.OverallStats, error) {
	return f.stats, f.err
}

func (f *fakeAnalyticsService) Forecast(ctx context.Context, req analytics.ForecastRequest) (*analytics.ForecastResponse, error) {
	f.lastForecastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

func (f *fakeAnalyticsService) Insights(ctx context.Context) ([]insights.Insight, error) {
	return f.insights, f.err
}

func (f *fakeAnalyticsService) ProductStats(ctx context.Context) ([]dataset.GroupStat, error) {
	return f.groupStats, f.err
}

func (f *fakeAnalyticsService) RegionStats(ctx context.Context) ([]dataset.GroupStat, error) {
	return f.groupStats, f.err
}

func (f *fakeAnalyticsService) SegmentStats(ctx context.Context) ([]dataset.GroupStat, error) {
	return f.groupStats, f.err
}

func (f *fakeAnalyticsService) Categories(ctx context.Context) ([]string, error) {
	return f.categories, f.err
}

func (f *fakeAnalyticsService) Trends(ctx context.Context, req analytics.TrendsRequest) (*analytics.TrendsResponse, error) {
	f.lastTrendsReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.trends, nil
}

func (f *fakeAnalyticsService) Historical(ctx context.Context, req analytics.HistoricalRequest) (*analytics.HistoricalResponse, error) {
	f.lastHistoricalReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.historical, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "dev"}}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	Root()(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Welcome to BizPredict API", data["message"])
	assert.Equal(t, serviceVersion, data["version"])
	endpoints := data["endpoints"].(map[string]any)
	assert.Equal(t, "/api/forecast", endpoints["forecast"])
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthLive(testConfig())(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get("X-BizPredict-Env"))
}

func TestHealthReady(t *testing.T) {
	service := &fakeAnalyticsService{
		readiness: analytics.ReadinessStatus{DataLoaded: true, ModelTrained: true},
	}

	rec := httptest.NewRecorder()
	HealthReady(testConfig(), service)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "ready", data["status"])
	assert.Equal(t, true, data["data_loaded"])
	assert.Equal(t, true, data["model_trained"])
}

func TestHealthReadyNotTrained(t *testing.T) {
	service := &fakeAnalyticsService{
		readiness: analytics.ReadinessStatus{DataLoaded: true, ModelTrained: false},
	}

	rec := httptest.NewRecorder()
	HealthReady(testConfig(), service)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "not_ready", data["status"])
	assert.Equal(t, false, data["model_trained"])
}

func TestStats(t *testing.T) {
	service := &fakeAnalyticsService{stats: &dataset.OverallStats{
		TotalSales:        5000,
		TotalTransactions: 5,
		AvgTransaction:    1000,
		DateRange:         dataset.DateRange{Start: "2023-01-02", End: "2023-02-11"},
	}}

	rec := httptest.NewRecorder()
	Stats(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, 5000.0, data["total_sales"])
	assert.Equal(t, 5.0, data["total_transactions"])
	dateRange := data["date_range"].(map[string]any)
	assert.Equal(t, "2023-01-02", dateRange["start"])
}

func TestStatsNotLoaded(t *testing.T) {
	service := &fakeAnalyticsService{err: pkgerrors.New(pkgerrors.CodeDataNotLoaded, "dataset not loaded")}

	rec := httptest.NewRecorder()
	Stats(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	assert.Equal(t, "DATA_NOT_LOADED", errBody["code"])
}

func TestForecast(t *testing.T) {
	service := &fakeAnalyticsService{forecast: &analytics.ForecastResponse{
		Dates:       []string{"2024-01-01", "2024-01-02"},
		Predictions: []float64{100, 110},
		LowerBound:  []float64{80, 90},
		UpperBound:  []float64{120, 130},
		Metrics:     analytics.ForecastMetrics{MAE: 5, MAPE: 4, TotalForecast: 210, AvgDaily: 105},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/forecast",
		strings.NewReader(`{"periods": 2, "category": "Coffee"}`))
	rec := httptest.NewRecorder()
	Forecast(service, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, service.lastForecastReq.Periods)
	assert.Equal(t, "Coffee", service.lastForecastReq.Category)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Len(t, data["dates"], 2)
	metrics := data["metrics"].(map[string]any)
	assert.Equal(t, 210.0, metrics["total_forecast"])
}

func TestForecastRejectsMalformedBody(t *testing.T) {
	service := &fakeAnalyticsService{}

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(`{"periods":`))
	rec := httptest.NewRecorder()
	Forecast(service, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
}

func TestForecastRejectsUnknownFields(t *testing.T) {
	service := &fakeAnalyticsService{}

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(`{"horizon": 30}`))
	rec := httptest.NewRecorder()
	Forecast(service, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecastRejectsOversizedHorizon(t *testing.T) {
	service := &fakeAnalyticsService{}

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(`{"periods": 400}`))
	rec := httptest.NewRecorder()
	Forecast(service, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	details := errBody["details"].(map[string]any)
	assert.Contains(t, details, "periods")
}

func TestForecastEmptyFilter(t *testing.T) {
	service := &fakeAnalyticsService{
		err: pkgerrors.New(pkgerrors.CodeEmptyFilter, "no data in range"),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(`{"category": "Gold"}`))
	rec := httptest.NewRecorder()
	Forecast(service, testLogger())(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	assert.Equal(t, "EMPTY_FILTER", errBody["code"])
	assert.Equal(t, "no data in range", errBody["message"])
}

func TestInsights(t *testing.T) {
	service := &fakeAnalyticsService{insights: []insights.Insight{{
		Category:       enums.InsightCategoryGrowth,
		Severity:       enums.SeverityPositive,
		Title:          "Strong Overall Growth",
		Description:    "Average monthly growth rate is 8.0%",
		Recommendation: "Scale operations to meet increasing demand",
	}}}

	rec := httptest.NewRecorder()
	Insights(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/insights", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, "Growth", first["category"])
	assert.Equal(t, "positive", first["severity"])
	assert.Equal(t, "Strong Overall Growth", first["title"])
}

func TestCategories(t *testing.T) {
	service := &fakeAnalyticsService{categories: []string{"Coffee", "Teff"}}

	rec := httptest.NewRecorder()
	Categories(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, []any{"Coffee", "Teff"}, data["categories"])
}

func TestGroupStatControllers(t *testing.T) {
	service := &fakeAnalyticsService{groupStats: []dataset.GroupStat{
		{Name: "Coffee", TotalSales: 4200, AvgSales: 1400, NumTransactions: 3},
	}}

	handlers := map[string]http.HandlerFunc{
		"/api/products": Products(service, testLogger()),
		"/api/regions":  Regions(service, testLogger()),
		"/api/segments": Segments(service, testLogger()),
	}
	for path, handler := range handlers {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			data := decodeBody(t, rec)["data"].([]any)
			require.Len(t, data, 1)
			first := data[0].(map[string]any)
			assert.Equal(t, "Coffee", first["name"])
			assert.Equal(t, 4200.0, first["total_sales"])
		})
	}
}

func TestTrends(t *testing.T) {
	service := &fakeAnalyticsService{trends: &analytics.TrendsResponse{
		Periods: []string{"2023-01", "2023-02"},
		Sales:   []float64{3500, 1500},
	}}

	rec := httptest.NewRecorder()
	Trends(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/trends?period=monthly", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, enums.TrendPeriodMonthly, service.lastTrendsReq.Period)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Len(t, data["periods"], 2)
}

func TestTrendsDefaultsToMonthly(t *testing.T) {
	service := &fakeAnalyticsService{trends: &analytics.TrendsResponse{}}

	rec := httptest.NewRecorder()
	Trends(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/trends", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, enums.TrendPeriodMonthly, service.lastTrendsReq.Period)
}

func TestTrendsRejectsBadPeriod(t *testing.T) {
	service := &fakeAnalyticsService{}

	rec := httptest.NewRecorder()
	Trends(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/trends?period=hourly", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistorical(t *testing.T) {
	service := &fakeAnalyticsService{historical: &analytics.HistoricalResponse{
		Dates: []string{"2023-01-02"},
		Sales: []float64{1500},
	}}

	url := "/api/historical?start_date=2023-01-01&end_date=2023-01-31&category=Coffee"
	rec := httptest.NewRecorder()
	Historical(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Coffee", service.lastHistoricalReq.Category)
	assert.Equal(t, "2023-01-01", service.lastHistoricalReq.Start.Format("2006-01-02"))
	assert.Equal(t, "2023-01-31", service.lastHistoricalReq.End.Format("2006-01-02"))
}

func TestHistoricalRejectsInvertedRange(t *testing.T) {
	service := &fakeAnalyticsService{}

	url := "/api/historical?start_date=2023-02-01&end_date=2023-01-01"
	rec := httptest.NewRecorder()
	Historical(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoricalRejectsBadDate(t *testing.T) {
	service := &fakeAnalyticsService{}

	rec := httptest.NewRecorder()
	Historical(service, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/historical?start_date=01-02-2023", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

package forecast

import (
	"math"
	"time"

	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
)

// Config tunes the seasonal regression fit.
type Config struct {
	// HoldoutDays is the trailing window reserved for evaluation. It is
	// clamped to a third of the series when the series is short.
	HoldoutDays int
	// ChangepointPriorScale controls trend flexibility; higher values
	// permit more inflection points and risk chasing recent noise.
	ChangepointPriorScale float64
	// IntervalWidth is the z value for the uncertainty band in log space.
	IntervalWidth float64
}

// DefaultConfig mirrors the service defaults: 90-day holdout, 0.05
// changepoint prior, 80% interval.
func DefaultConfig() Config {
	return Config{
		HoldoutDays:           90,
		ChangepointPriorScale: 0.05,
		IntervalWidth:         1.28,
	}
}

func (c Config) withDefaults() Config {
	if c.HoldoutDays <= 0 {
		c.HoldoutDays = 90
	}
	if c.ChangepointPriorScale <= 0 {
		c.ChangepointPriorScale = 0.05
	}
	if c.IntervalWidth <= 0 {
		c.IntervalWidth = 1.28
	}
	return c
}

// seasonality is one periodic component of the decomposition.
type seasonality struct {
	period float64
	order  int
}

// Yearly, weekly, and an explicit monthly component; effects are
// multiplicative (the fit runs on log values).
var seasonalities = []seasonality{
	{period: 365.25, order: 10},
	{period: 7, order: 3},
	{period: 30.5, order: 5},
}

const numChangepoints = 25

// changepointRange caps potential changepoints to the leading share of the
// training window so the trend tail is not fit to the newest noise.
const changepointRange = 0.8

// Model is a trained seasonal decomposition over a daily series.
// The zero value is untrained; Train is the only constructor.
type Model struct {
	cfg     Config
	trained bool

	origin        time.Time
	span          float64
	lastTrainDate time.Time
	changepoints  []float64
	coef          []float64
	sigma         float64

	train   dataset.DailySeries
	holdout dataset.DailySeries
}

// Entry is one day of a forecast.
type Entry struct {
	Date  time.Time
	Point float64
	Lower float64
	Upper float64
}

// Result is the forecast frame for a horizon, ascending by date.
type Result struct {
	Entries []Entry
}

// Train fits the model on the leading len(series)-H days and keeps the
// trailing H days as the evaluation holdout.
func Train(series dataset.DailySeries, cfg Config) (*Model, error) {
	cfg = cfg.withDefaults()
	n := len(series)
	if n < 4 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "series too short to fit a model")
	}

	holdout := cfg.HoldoutDays
	if holdout > n/3 {
		holdout = n / 3
	}
	if holdout < 1 {
		holdout = 1
	}
	split := n - holdout

	m := &Model{
		cfg:     cfg,
		train:   series[:split],
		holdout: series[split:],
	}
	m.origin = m.train[0].Date
	m.lastTrainDate = m.train[len(m.train)-1].Date
	m.span = m.dayOffset(m.lastTrainDate)
	if m.span < 1 {
		m.span = 1
	}

	for j := 1; j <= numChangepoints; j++ {
		m.changepoints = append(m.changepoints, m.span*changepointRange*float64(j)/float64(numChangepoints+1))
	}

	if err := m.fit(); err != nil {
		return nil, err
	}
	m.trained = true
	return m, nil
}

// LastTrainDate returns the final date the trend was fit on.
func (m *Model) LastTrainDate() time.Time {
	return m.lastTrainDate
}

// HoldoutLen returns the number of reserved evaluation days.
func (m *Model) HoldoutLen() int {
	return len(m.holdout)
}

// Forecast extends the decomposition periods days beyond the last training
// date. It fails on an untrained model.
func (m *Model) Forecast(periods int) (*Result, error) {
	if m == nil || !m.trained {
		return nil, pkgerrors.New(pkgerrors.CodeModelNotTrained, "model not trained")
	}
	if periods < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "forecast periods must be positive")
	}

	entries := make([]Entry, 0, periods)
	for i := 1; i <= periods; i++ {
		date := m.lastTrainDate.AddDate(0, 0, i)
		entries = append(entries, m.predict(date))
	}
	return &Result{Entries: entries}, nil
}

// Evaluate scores the fit against the held-out tail. It fails on an
// untrained model.
func (m *Model) Evaluate() (EvaluationMetrics, error) {
	if m == nil || !m.trained {
		return EvaluationMetrics{}, pkgerrors.New(pkgerrors.CodeModelNotTrained, "model not trained")
	}

	actual := make([]float64, len(m.holdout))
	predicted := make([]float64, len(m.holdout))
	for i, p := range m.holdout {
		actual[i] = p.Value
		predicted[i] = m.predict(p.Date).Point
	}
	return ComputeMetrics(actual, predicted)
}

// fit solves the ridge-regularized least squares problem on log values.
// The multiplicative seasonality mode is the log transform: seasonal
// effects scale with the trend level, and exp keeps every point estimate
// positive.
func (m *Model) fit() error {
	rows := len(m.train)
	cols := m.featureCount()

	xtx := make([][]float64, cols)
	for i := range xtx {
		xtx[i] = make([]float64, cols)
	}
	xty := make([]float64, cols)

	for _, p := range m.train {
		x := m.features(m.dayOffset(p.Date))
		y := math.Log(math.Max(p.Value, 1e-9))
		for i := 0; i < cols; i++ {
			xty[i] += x[i] * y
			for j := 0; j < cols; j++ {
				xtx[i][j] += x[i] * x[j]
			}
		}
	}

	for i, lambda := range m.penalties() {
		xtx[i][i] += lambda
	}

	coef, err := solveLinear(xtx, xty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "solving trend system")
	}
	m.coef = coef

	var ssr float64
	for _, p := range m.train {
		x := m.features(m.dayOffset(p.Date))
		res := math.Log(math.Max(p.Value, 1e-9)) - dot(coef, x)
		ssr += res * res
	}
	denom := float64(rows - 1)
	if denom < 1 {
		denom = 1
	}
	m.sigma = math.Sqrt(ssr / denom)
	return nil
}

func (m *Model) predict(date time.Time) Entry {
	x := m.features(m.dayOffset(date))
	logY := dot(m.coef, x)
	width := m.cfg.IntervalWidth * m.sigma
	return Entry{
		Date:  date,
		Point: math.Exp(logY),
		Lower: math.Exp(logY - width),
		Upper: math.Exp(logY + width),
	}
}

func (m *Model) dayOffset(date time.Time) float64 {
	return date.Sub(m.origin).Hours() / 24
}

func (m *Model) featureCount() int {
	count := 2 + numChangepoints
	for _, s := range seasonalities {
		count += 2 * s.order
	}
	return count
}

// features builds the design row for an offset in days: intercept, scaled
// trend, changepoint hinges, then Fourier terms per seasonal component.
func (m *Model) features(t float64) []float64 {
	x := make([]float64, 0, m.featureCount())
	x = append(x, 1, t/m.span)
	for _, cp := range m.changepoints {
		if t > cp {
			x = append(x, (t-cp)/m.span)
		} else {
			x = append(x, 0)
		}
	}
	for _, s := range seasonalities {
		for k := 1; k <= s.order; k++ {
			angle := 2 * math.Pi * float64(k) * t / s.period
			x = append(x, math.Sin(angle), math.Cos(angle))
		}
	}
	return x
}

// penalties returns the per-coefficient ridge weights: nearly free trend
// base, changepoint deltas damped by the prior scale, mild seasonal damping.
func (m *Model) penalties() []float64 {
	lambdas := make([]float64, 0, m.featureCount())
	lambdas = append(lambdas, 1e-8, 1e-8)
	cpLambda := 1.0 / m.cfg.ChangepointPriorScale
	for i := 0; i < numChangepoints; i++ {
		lambdas = append(lambdas, cpLambda)
	}
	for _, s := range seasonalities {
		for k := 0; k < 2*s.order; k++ {
			lambdas = append(lambdas, 1.0)
		}
	}
	return lambdas
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

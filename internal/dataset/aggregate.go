package dataset

import (
	"fmt"
	"sort"
	"time"

	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
	"github.com/abenezer-t/bizpredict-backend/pkg/enums"
)

// Point is one bucket of an aggregated series.
type Point struct {
	Date  time.Time
	Value float64
}

// DailySeries is a daily sales aggregate, strictly ascending by date.
// Calendar days with no transactions are omitted, matching the groupby
// the rest of the pipeline was built against.
type DailySeries []Point

// Dates returns the series dates in order.
func (s DailySeries) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}

// Values returns the series values in order.
func (s DailySeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Total sums the series.
func (s DailySeries) Total() float64 {
	var sum float64
	for _, p := range s {
		sum += p.Value
	}
	return sum
}

// Mean averages the series; zero for an empty series.
func (s DailySeries) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Total() / float64(len(s))
}

// TailMean averages the trailing n points (fewer if the series is shorter).
func (s DailySeries) TailMean(n int) float64 {
	if len(s) == 0 || n <= 0 {
		return 0
	}
	if n > len(s) {
		n = len(s)
	}
	return DailySeries(s[len(s)-n:]).Mean()
}

// DailySeries aggregates total_sales per calendar day under the filter.
// An empty result is an error, not an empty series: downstream metric
// computation divides by series length.
func (t *Table) DailySeries(f Filter) (DailySeries, error) {
	rows := t.filtered(f)
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyFilter, "no data in range").
			WithDetails(filterDetails(f))
	}
	buckets := map[time.Time]float64{}
	for _, tx := range rows {
		buckets[Day(tx.Date)] += tx.TotalSales
	}
	series := make(DailySeries, 0, len(buckets))
	for day, sum := range buckets {
		series = append(series, Point{Date: day, Value: sum})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

// MonthlySeries aggregates total_sales per calendar month over the whole
// table, ascending. Point dates are the first day of each month.
func (t *Table) MonthlySeries() DailySeries {
	buckets := map[time.Time]float64{}
	for _, tx := range t.rows {
		day := Day(tx.Date)
		month := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[month] += tx.TotalSales
	}
	series := make(DailySeries, 0, len(buckets))
	for month, sum := range buckets {
		series = append(series, Point{Date: month, Value: sum})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

// MonthOfYearMeans returns the mean transaction value per calendar month
// of year (January..December) across the whole history.
func (t *Table) MonthOfYearMeans() map[time.Month]float64 {
	sums := map[time.Month]float64{}
	counts := map[time.Month]int{}
	for _, tx := range t.rows {
		m := tx.Date.UTC().Month()
		sums[m] += tx.TotalSales
		counts[m]++
	}
	means := make(map[time.Month]float64, len(sums))
	for m, sum := range sums {
		means[m] = sum / float64(counts[m])
	}
	return means
}

// TrendPoint is one labeled bucket of a trend query.
type TrendPoint struct {
	Period string  `json:"period"`
	Sales  float64 `json:"sales"`
}

// Trends buckets total_sales by the requested granularity. Labels are
// ISO dates for daily, ISO year-week for weekly, and YYYY-MM for monthly.
func (t *Table) Trends(period enums.TrendPeriod) []TrendPoint {
	type bucket struct {
		order time.Time
		label string
	}
	sums := map[string]float64{}
	orders := map[string]time.Time{}
	for _, tx := range t.rows {
		day := Day(tx.Date)
		var b bucket
		switch period {
		case enums.TrendPeriodDaily:
			b = bucket{order: day, label: day.Format("2006-01-02")}
		case enums.TrendPeriodWeekly:
			year, week := day.ISOWeek()
			// anchor ordering on the Monday of the ISO week
			monday := day.AddDate(0, 0, -int((day.Weekday()+6)%7))
			b = bucket{order: monday, label: fmt.Sprintf("%d-W%02d", year, week)}
		default:
			month := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
			b = bucket{order: month, label: month.Format("2006-01")}
		}
		sums[b.label] += tx.TotalSales
		orders[b.label] = b.order
	}
	out := make([]TrendPoint, 0, len(sums))
	for label, sum := range sums {
		out = append(out, TrendPoint{Period: label, Sales: sum})
	}
	sort.Slice(out, func(i, j int) bool { return orders[out[i].Period].Before(orders[out[j].Period]) })
	return out
}

func filterDetails(f Filter) map[string]any {
	details := map[string]any{}
	if !f.Start.IsZero() {
		details["start_date"] = f.Start.Format("2006-01-02")
	}
	if !f.End.IsZero() {
		details["end_date"] = f.End.Format("2006-01-02")
	}
	if f.Category != "" {
		details["category"] = f.Category
	}
	if f.Region != "" {
		details["region"] = f.Region
	}
	return details
}

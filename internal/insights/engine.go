package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	"github.com/abenezer-t/bizpredict-backend/internal/forecast"
	"github.com/abenezer-t/bizpredict-backend/pkg/enums"
)

// Insight is one structured finding with a recommendation.
type Insight struct {
	Category       enums.InsightCategory `json:"category"`
	Severity       enums.Severity        `json:"severity"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Recommendation string                `json:"recommendation"`
}

// Threshold contracts for the rule set. These are fixed design values,
// compared against population-level aggregates without significance tests.
const (
	growthPositivePct     = 5.0
	growthWarningPct      = -5.0
	accelerationMarginPct = 5.0
	underperformRatio     = 10.0
	forecastShiftPct      = 10.0
	recentMonths          = 3
	extremeMonthCount     = 3
	forecastWindowDays    = 30
)

// Generate runs every analysis over the table and, when a forecast frame is
// supplied, the forecast divergence rule. Each analysis is independent and
// appends zero or more findings; insertion order within a category holds.
func Generate(table *dataset.Table, fc *forecast.Result) []Insight {
	var out []Insight
	out = append(out, analyzeGrowth(table)...)
	out = append(out, analyzeSeasonality(table)...)
	out = append(out, analyzeProducts(table)...)
	out = append(out, analyzeGeography(table)...)
	out = append(out, analyzeCustomers(table)...)
	out = append(out, analyzeForecast(table, fc)...)
	return out
}

// analyzeGrowth looks at month-over-month percent change across the whole
// history plus the trailing three months.
func analyzeGrowth(table *dataset.Table) []Insight {
	monthly := table.MonthlySeries()
	var changes []float64
	for i := 1; i < len(monthly); i++ {
		prev := monthly[i-1].Value
		if prev == 0 {
			continue
		}
		changes = append(changes, (monthly[i].Value-prev)/prev*100)
	}
	if len(changes) == 0 {
		return nil
	}

	avgGrowth := mean(changes)
	recent := changes
	if len(recent) > recentMonths {
		recent = recent[len(recent)-recentMonths:]
	}
	recentGrowth := mean(recent)

	var out []Insight
	if avgGrowth > growthPositivePct {
		out = append(out, Insight{
			Category:       enums.InsightCategoryGrowth,
			Severity:       enums.SeverityPositive,
			Title:          "Strong Overall Growth",
			Description:    fmt.Sprintf("Average monthly growth rate is %.1f%%", avgGrowth),
			Recommendation: "Scale operations to meet increasing demand",
		})
	} else if avgGrowth < growthWarningPct {
		out = append(out, Insight{
			Category:       enums.InsightCategoryGrowth,
			Severity:       enums.SeverityWarning,
			Title:          "Declining Sales Trend",
			Description:    fmt.Sprintf("Average monthly decline of %.1f%%", -avgGrowth),
			Recommendation: "Review pricing, marketing, and product mix",
		})
	}

	if recentGrowth > avgGrowth+accelerationMarginPct {
		out = append(out, Insight{
			Category:       enums.InsightCategoryGrowth,
			Severity:       enums.SeverityPositive,
			Title:          "Accelerating Growth",
			Description:    fmt.Sprintf("Recent growth (%.1f%%) exceeds average (%.1f%%)", recentGrowth, avgGrowth),
			Recommendation: "Invest in inventory and marketing to capitalize on momentum",
		})
	}
	return out
}

// analyzeSeasonality surfaces the three strongest and weakest calendar
// months by mean transaction value.
func analyzeSeasonality(table *dataset.Table) []Insight {
	means := table.MonthOfYearMeans()
	if len(means) < 2*extremeMonthCount {
		return nil
	}

	ranked := make([]monthMean, 0, len(means))
	for m, v := range means {
		ranked = append(ranked, monthMean{month: m, value: v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].value != ranked[j].value {
			return ranked[i].value > ranked[j].value
		}
		return ranked[i].month < ranked[j].month
	})

	peakNames := monthNames(ranked[:extremeMonthCount])
	low := ranked[len(ranked)-extremeMonthCount:]
	lowNames := monthNames([]monthMean{low[2], low[1], low[0]})

	return []Insight{
		{
			Category:       enums.InsightCategorySeasonality,
			Severity:       enums.SeverityInfo,
			Title:          "Peak Sales Periods",
			Description:    fmt.Sprintf("Highest sales occur in %s", peakNames),
			Recommendation: fmt.Sprintf("Increase inventory and staffing during %s", peakNames),
		},
		{
			Category:       enums.InsightCategorySeasonality,
			Severity:       enums.SeverityInfo,
			Title:          "Low Sales Periods",
			Description:    fmt.Sprintf("Lowest sales occur in %s", lowNames),
			Recommendation: fmt.Sprintf("Run promotions and marketing campaigns during %s", lowNames),
		},
	}
}

// analyzeProducts flags the top category and, on a >10x spread, the bottom.
func analyzeProducts(table *dataset.Table) []Insight {
	stats := table.ProductStats()
	if len(stats) == 0 {
		return nil
	}
	top := stats[0]
	bottom := stats[len(stats)-1]

	out := []Insight{{
		Category:       enums.InsightCategoryProducts,
		Severity:       enums.SeverityPositive,
		Title:          fmt.Sprintf("%s - Top Performer", top.Name),
		Description:    fmt.Sprintf("Generated ETB %.2f in total sales", top.TotalSales),
		Recommendation: fmt.Sprintf("Expand %s product line and increase marketing investment", top.Name),
	}}

	if len(stats) > 1 && bottom.TotalSales > 0 && top.TotalSales/bottom.TotalSales > underperformRatio {
		out = append(out, Insight{
			Category:       enums.InsightCategoryProducts,
			Severity:       enums.SeverityWarning,
			Title:          fmt.Sprintf("%s - Underperforming", bottom.Name),
			Description:    fmt.Sprintf("Only ETB %.2f in sales (vs ETB %.2f for top product)", bottom.TotalSales, top.TotalSales),
			Recommendation: fmt.Sprintf("Consider discontinuing or repositioning %s", bottom.Name),
		})
	}
	return out
}

// analyzeGeography always emits the top and bottom regions; unlike the
// product rule there is no ratio gate on the bottom market.
func analyzeGeography(table *dataset.Table) []Insight {
	stats := table.RegionStats()
	if len(stats) < 2 {
		return nil
	}
	top := stats[0]
	bottom := stats[len(stats)-1]

	return []Insight{
		{
			Category:       enums.InsightCategoryGeography,
			Severity:       enums.SeverityPositive,
			Title:          fmt.Sprintf("%s - Top Regional Market", top.Name),
			Description:    fmt.Sprintf("Leading region with ETB %.2f in sales", top.TotalSales),
			Recommendation: fmt.Sprintf("Use %s as model for other regions", top.Name),
		},
		{
			Category:       enums.InsightCategoryGeography,
			Severity:       enums.SeverityWarning,
			Title:          fmt.Sprintf("%s - Growth Opportunity", bottom.Name),
			Description:    fmt.Sprintf("Underdeveloped market with only ETB %.2f", bottom.TotalSales),
			Recommendation: fmt.Sprintf("Increase marketing and distribution efforts in %s", bottom.Name),
		},
	}
}

// analyzeCustomers reports the dominant segment; no underperformer check.
func analyzeCustomers(table *dataset.Table) []Insight {
	stats := table.SegmentStats()
	if len(stats) == 0 {
		return nil
	}
	top := stats[0]

	return []Insight{{
		Category:       enums.InsightCategoryCustomers,
		Severity:       enums.SeverityInfo,
		Title:          fmt.Sprintf("%s - Primary Customer Base", top.Name),
		Description:    fmt.Sprintf("%s generates most revenue with ETB %.2f", top.Name, top.TotalSales),
		Recommendation: fmt.Sprintf("Develop loyalty programs and exclusive offers for %s customers", top.Name),
	}}
}

// analyzeForecast compares the trailing 30 actual days against the trailing
// 30 forecast days.
func analyzeForecast(table *dataset.Table, fc *forecast.Result) []Insight {
	if fc == nil || len(fc.Entries) == 0 {
		return nil
	}
	daily, err := table.DailySeries(dataset.Filter{})
	if err != nil {
		return nil
	}

	recentAvg := daily.TailMean(forecastWindowDays)
	if recentAvg == 0 {
		return nil
	}
	forecastAvg := fc.TailMean(forecastWindowDays)
	changePct := (forecastAvg - recentAvg) / recentAvg * 100

	switch {
	case changePct > forecastShiftPct:
		return []Insight{{
			Category:       enums.InsightCategoryForecast,
			Severity:       enums.SeverityPositive,
			Title:          "Strong Growth Expected",
			Description:    fmt.Sprintf("Forecasted sales %.1f%% higher than current levels", changePct),
			Recommendation: "Prepare for increased demand with inventory and staffing",
		}}
	case changePct < -forecastShiftPct:
		return []Insight{{
			Category:       enums.InsightCategoryForecast,
			Severity:       enums.SeverityWarning,
			Title:          "Sales Decline Expected",
			Description:    fmt.Sprintf("Forecasted sales %.1f%% lower than current levels", -changePct),
			Recommendation: "Implement promotional campaigns and review pricing strategy",
		}}
	default:
		return []Insight{{
			Category:       enums.InsightCategoryForecast,
			Severity:       enums.SeverityInfo,
			Title:          "Stable Sales Expected",
			Description:    "Forecasted sales remain within ±10% of current levels",
			Recommendation: "Maintain current operations and monitor for changes",
		}}
	}
}

type monthMean struct {
	month time.Month
	value float64
}

func monthNames(months []monthMean) string {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.month.String()
	}
	return strings.Join(names, ", ")
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

package dataset

import (
	"sort"

	"github.com/shopspring/decimal"
)

// OverallStats summarizes the whole table.
type OverallStats struct {
	TotalSales        float64   `json:"total_sales"`
	TotalTransactions int       `json:"total_transactions"`
	AvgTransaction    float64   `json:"avg_transaction"`
	DateRange         DateRange `json:"date_range"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GroupStat is one row of a grouped stats report, sorted descending by total.
type GroupStat struct {
	Name            string  `json:"name"`
	TotalSales      float64 `json:"total_sales"`
	AvgSales        float64 `json:"avg_sales"`
	NumTransactions int     `json:"num_transactions"`
}

// OverallStats computes totals over the full table. Money sums run through
// decimal so the reported figures do not drift from the 2-decimal records.
func (t *Table) OverallStats() OverallStats {
	total := decimal.Zero
	for _, tx := range t.rows {
		total = total.Add(decimal.NewFromFloat(tx.TotalSales))
	}
	count := len(t.rows)
	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(int64(count)))
	}
	start, end := t.DateRange()
	return OverallStats{
		TotalSales:        total.Round(2).InexactFloat64(),
		TotalTransactions: count,
		AvgTransaction:    avg.Round(2).InexactFloat64(),
		DateRange: DateRange{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
	}
}

// ProductStats groups by product category.
func (t *Table) ProductStats() []GroupStat {
	return t.groupStats(func(tx Transaction) string { return tx.ProductCategory })
}

// RegionStats groups by region.
func (t *Table) RegionStats() []GroupStat {
	return t.groupStats(func(tx Transaction) string { return tx.Region })
}

// SegmentStats groups by customer segment.
func (t *Table) SegmentStats() []GroupStat {
	return t.groupStats(func(tx Transaction) string { return tx.CustomerSegment })
}

func (t *Table) groupStats(key func(Transaction) string) []GroupStat {
	totals := map[string]decimal.Decimal{}
	counts := map[string]int{}
	for _, tx := range t.rows {
		k := key(tx)
		totals[k] = totals[k].Add(decimal.NewFromFloat(tx.TotalSales))
		counts[k]++
	}
	out := make([]GroupStat, 0, len(totals))
	for name, total := range totals {
		count := counts[name]
		avg := total.Div(decimal.NewFromInt(int64(count)))
		out = append(out, GroupStat{
			Name:            name,
			TotalSales:      total.Round(2).InexactFloat64(),
			AvgSales:        avg.Round(2).InexactFloat64(),
			NumTransactions: count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSales != out[j].TotalSales {
			return out[i].TotalSales > out[j].TotalSales
		}
		return out[i].Name < out[j].Name
	})
	return out
}

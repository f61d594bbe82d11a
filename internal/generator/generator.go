package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	"github.com/abenezer-t/bizpredict-backend/pkg/enums"
)

// Config bounds the generated date range and seeds the random source.
type Config struct {
	Start time.Time
	End   time.Time
	Seed  int64
}

var regions = []string{
	"Addis Ababa", "Oromia", "Amhara", "Tigray", "SNNPR", "Somali", "Afar", "Dire Dawa",
}

var productCategories = []string{
	"Coffee", "Teff", "Electronics", "Textiles", "Spices",
	"Livestock", "Vegetables", "Injera", "Leather Goods", "Cereals",
}

var customerSegments = []string{
	"Retail", "Wholesale", "Export", "B2B", "Direct Consumer",
}

var baseAmounts = map[string]float64{
	"Coffee":        5000,
	"Teff":          3000,
	"Electronics":   15000,
	"Textiles":      8000,
	"Spices":        2000,
	"Livestock":     20000,
	"Vegetables":    1500,
	"Injera":        1000,
	"Leather Goods": 12000,
	"Cereals":       4000,
}

const (
	annualGrowth   = 0.10
	noiseStdDev    = 0.15
	minTransaction = 100.0
	firstID        = 1000

	minDailyTransactions = 5
	maxDailyTransactions = 20
)

// Generate produces the synthetic transaction table for every calendar day
// in [Start, End]. Output is deterministic for a given config: a single
// seeded source is consumed in a fixed order (per-day count, then per
// transaction region, category, segment, noise), so reordering any draw
// changes the table.
func Generate(cfg Config) ([]dataset.Transaction, error) {
	start := dataset.Day(cfg.Start)
	end := dataset.Day(cfg.End)
	if end.Before(start) {
		return nil, fmt.Errorf("generator end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var rows []dataset.Transaction
	id := int64(firstID)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		daysFromStart := int(day.Sub(start).Hours() / 24)
		count := minDailyTransactions + rng.Intn(maxDailyTransactions-minDailyTransactions+1)

		for i := 0; i < count; i++ {
			region := regions[rng.Intn(len(regions))]
			category := productCategories[rng.Intn(len(productCategories))]
			segment := customerSegments[rng.Intn(len(customerSegments))]

			base := baseAmounts[category]
			amount := applyTrend(base, daysFromStart)
			amount = applySeasonality(amount, day)
			amount = applyNoise(amount, rng)
			if amount < minTransaction {
				amount = minTransaction
			}

			unitPrice := base / 10
			quantity := int(amount / unitPrice)
			if quantity < 1 {
				quantity = 1
			}

			switch region {
			case "Addis Ababa":
				amount *= 1.3
			case "Oromia":
				amount *= 1.1
			case "Afar":
				amount *= 0.7
			}

			switch segment {
			case "Wholesale":
				amount *= 1.5
				quantity *= 2
			case "Export":
				amount *= 2.0
				quantity *= 3
			}

			rows = append(rows, dataset.Transaction{
				ID:              id,
				Date:            day,
				Region:          region,
				ProductCategory: category,
				CustomerSegment: segment,
				Quantity:        quantity,
				UnitPrice:       round2(amount / float64(quantity)),
				TotalSales:      round2(amount),
				Currency:        enums.CurrencyETB,
			})
			id++
		}
	}
	return rows, nil
}

// applyTrend applies the linear annual growth component.
func applyTrend(base float64, daysFromStart int) float64 {
	dailyGrowth := annualGrowth / 365
	return base * (1 + dailyGrowth*float64(daysFromStart))
}

// applySeasonality combines the sinusoidal month-of-year factor, fixed-date
// holiday boosts, and the weekend discount.
func applySeasonality(value float64, date time.Time) float64 {
	factor := 1 + 0.2*math.Sin(2*math.Pi*float64(date.Month())/12)

	month, dayOfMonth := date.Month(), date.Day()
	switch {
	case month == time.September && dayOfMonth >= 1 && dayOfMonth <= 15: // Enkutatash
		factor *= 1.5
	case month == time.January && dayOfMonth >= 7 && dayOfMonth <= 20: // Timkat
		factor *= 1.4
	case month == time.September && dayOfMonth >= 27 && dayOfMonth <= 30: // Meskel
		factor *= 1.3
	case month == time.December: // Christmas season
		factor *= 1.6
	}

	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		factor *= 0.85
	}
	return value * factor
}

// applyNoise multiplies by Gaussian noise centered on 1.
func applyNoise(value float64, rng *rand.Rand) float64 {
	return value * (1 + noiseStdDev*rng.NormFloat64())
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

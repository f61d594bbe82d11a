package dataset

import (
	"time"

	"github.com/abenezer-t/bizpredict-backend/pkg/enums"
)

// Transaction is one immutable sales record. Rows are created by the
// generator (or loaded from CSV/sqlite) and never mutated afterwards.
type Transaction struct {
	ID              int64          `json:"transaction_id" gorm:"column:transaction_id;primaryKey"`
	Date            time.Time      `json:"date" gorm:"column:date;not null;index"`
	Region          string         `json:"region" gorm:"column:region;not null"`
	ProductCategory string         `json:"product_category" gorm:"column:product_category;not null"`
	CustomerSegment string         `json:"customer_segment" gorm:"column:customer_segment;not null"`
	Quantity        int            `json:"quantity" gorm:"column:quantity;not null"`
	UnitPrice       float64        `json:"unit_price" gorm:"column:unit_price;not null"`
	TotalSales      float64        `json:"total_sales" gorm:"column:total_sales;not null"`
	Currency        enums.Currency `json:"currency" gorm:"column:currency;not null"`
}

// TableName satisfies gorm's naming hook.
func (Transaction) TableName() string {
	return "transactions"
}

// Filter narrows a table to a date window, product category, or region.
// Zero values mean "no constraint".
type Filter struct {
	Start    time.Time
	End      time.Time
	Category string
	Region   string
}

func (f Filter) matches(tx Transaction) bool {
	if !f.Start.IsZero() && tx.Date.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && tx.Date.After(f.End) {
		return false
	}
	if f.Category != "" && tx.ProductCategory != f.Category {
		return false
	}
	if f.Region != "" && tx.Region != f.Region {
		return false
	}
	return true
}

// IsZero reports whether the filter constrains anything.
func (f Filter) IsZero() bool {
	return f.Start.IsZero() && f.End.IsZero() && f.Category == "" && f.Region == ""
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

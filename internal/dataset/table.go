package dataset

import (
	"sort"
	"time"

	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
)

// Table is the in-memory transaction collection. It is built once at
// startup and shared read-only between requests; no method mutates it.
type Table struct {
	rows []Transaction
}

// NewTable wraps rows in a Table. Rows are sorted by id so loads from
// unordered sources stay deterministic.
func NewTable(rows []Transaction) (*Table, error) {
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDataNotLoaded, "transaction table is empty")
	}
	sorted := make([]Transaction, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Table{rows: sorted}, nil
}

// Len returns the number of transactions.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows exposes the underlying records. Callers must not modify them.
func (t *Table) Rows() []Transaction {
	return t.rows
}

// DateRange returns the earliest and latest transaction days.
func (t *Table) DateRange() (time.Time, time.Time) {
	start := Day(t.rows[0].Date)
	end := start
	for _, tx := range t.rows[1:] {
		day := Day(tx.Date)
		if day.Before(start) {
			start = day
		}
		if day.After(end) {
			end = day
		}
	}
	return start, end
}

// Categories returns the distinct product categories sorted ascending.
func (t *Table) Categories() []string {
	return t.distinct(func(tx Transaction) string { return tx.ProductCategory })
}

// Regions returns the distinct regions sorted ascending.
func (t *Table) Regions() []string {
	return t.distinct(func(tx Transaction) string { return tx.Region })
}

// Segments returns the distinct customer segments sorted ascending.
func (t *Table) Segments() []string {
	return t.distinct(func(tx Transaction) string { return tx.CustomerSegment })
}

func (t *Table) distinct(key func(Transaction) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tx := range t.rows {
		k := key(tx)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (t *Table) filtered(f Filter) []Transaction {
	if f.IsZero() {
		return t.rows
	}
	var out []Transaction
	for _, tx := range t.rows {
		if f.matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

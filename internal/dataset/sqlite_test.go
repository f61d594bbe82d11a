package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "sales.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	store := openTestStore(t)
	rows := testRows()

	require.NoError(t, store.Replace(rows))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, len(rows))
	for i, tx := range loaded {
		assert.Equal(t, rows[i].ID, tx.ID)
		assert.True(t, tx.Date.UTC().Equal(rows[i].Date), "row %d date", i)
		assert.Equal(t, rows[i].Region, tx.Region)
		assert.Equal(t, rows[i].ProductCategory, tx.ProductCategory)
		assert.Equal(t, rows[i].CustomerSegment, tx.CustomerSegment)
		assert.Equal(t, rows[i].Quantity, tx.Quantity)
		assert.InDelta(t, rows[i].UnitPrice, tx.UnitPrice, 1e-9)
		assert.InDelta(t, rows[i].TotalSales, tx.TotalSales, 1e-9)
		assert.Equal(t, rows[i].Currency, tx.Currency)
	}
}

func TestSQLiteReplaceOverwrites(t *testing.T) {
	store := openTestStore(t)
	rows := testRows()

	require.NoError(t, store.Replace(rows))
	require.NoError(t, store.Replace(rows[:2]))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestSQLiteLoadTable(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Replace(testRows()))

	table, err := store.LoadTable()
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	start, end := table.DateRange()
	assert.True(t, start.Equal(day("2023-01-02")))
	assert.True(t, end.Equal(day("2023-02-11")))
}

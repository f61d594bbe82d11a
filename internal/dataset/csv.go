package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/abenezer-t/bizpredict-backend/pkg/enums"
	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
)

var csvHeader = []string{
	"transaction_id", "date", "region", "product_category", "customer_segment",
	"quantity", "unit_price", "total_sales", "currency",
}

const csvDateLayout = "2006-01-02"

// WriteCSV streams the rows with the canonical header.
func WriteCSV(w io.Writer, rows []Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, tx := range rows {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			Day(tx.Date).Format(csvDateLayout),
			tx.Region,
			tx.ProductCategory,
			tx.CustomerSegment,
			strconv.Itoa(tx.Quantity),
			strconv.FormatFloat(tx.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(tx.TotalSales, 'f', 2, 64),
			tx.Currency.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", tx.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV parses a transaction table written by WriteCSV (or any source
// matching the input schema).
func ReadCSV(r io.Reader) ([]Transaction, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected csv header with %d columns", len(header))
	}

	var rows []Transaction
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		line++
		tx, err := parseCSVRecord(record)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		rows = append(rows, tx)
	}
	return rows, nil
}

// LoadCSV reads the table from a file path into a Table.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDataNotLoaded, err, "opening dataset csv")
	}
	defer file.Close()

	rows, err := ReadCSV(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDataNotLoaded, err, "parsing dataset csv")
	}
	return NewTable(rows)
}

func parseCSVRecord(record []string) (Transaction, error) {
	if len(record) != len(csvHeader) {
		return Transaction{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(record))
	}
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction_id %q", record[0])
	}
	date, err := time.Parse(csvDateLayout, record[1])
	if err != nil {
		// full timestamps are accepted too
		date, err = time.Parse(time.RFC3339, record[1])
		if err != nil {
			return Transaction{}, fmt.Errorf("invalid date %q", record[1])
		}
	}
	quantity, err := strconv.Atoi(record[5])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid quantity %q", record[5])
	}
	unitPrice, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid unit_price %q", record[6])
	}
	totalSales, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid total_sales %q", record[7])
	}
	currency, err := enums.ParseCurrency(record[8])
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:              id,
		Date:            Day(date),
		Region:          record[2],
		ProductCategory: record[3],
		CustomerSegment: record[4],
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		TotalSales:      totalSales,
		Currency:        currency,
	}, nil
}

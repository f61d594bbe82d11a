package dataset

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
)

// SQLiteStore persists the transaction table in a sqlite file so generated
// datasets survive restarts without regenerating.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the sqlite database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDataNotLoaded, err, "opening sqlite dataset")
	}
	return &SQLiteStore{db: db}, nil
}

// Migrate creates the transactions table if missing.
func (s *SQLiteStore) Migrate() error {
	if err := s.db.AutoMigrate(&Transaction{}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "migrating transactions table")
	}
	return nil
}

// Replace swaps the stored table for rows inside one transaction.
func (s *SQLiteStore) Replace(rows []Transaction) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Transaction{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing transactions")
	}
	return nil
}

// LoadAll reads every transaction ordered by id.
func (s *SQLiteStore) LoadAll() ([]Transaction, error) {
	var rows []Transaction
	if err := s.db.Order("transaction_id").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDataNotLoaded, err, "loading transactions")
	}
	return rows, nil
}

// LoadTable reads the full table into memory.
func (s *SQLiteStore) LoadTable() (*Table, error) {
	rows, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	return NewTable(rows)
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

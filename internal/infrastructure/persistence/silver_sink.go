package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dwh/etl/internal/domain/silver"
)

const insertBatchSize = 500

// GormSilverSink implements silver.Sink with full-refresh semantics: each
// Replace call rewrites its target table inside one transaction, so readers
// never observe a half-loaded batch.
type GormSilverSink struct {
	db *gorm.DB
}

// NewGormSilverSink creates a new GormSilverSink
func NewGormSilverSink(db *gorm.DB) *GormSilverSink {
	return &GormSilverSink{db: db}
}

// ReplaceCustomers rewrites the cleansed customer table
func (s *GormSilverSink) ReplaceCustomers(ctx context.Context, rows []silver.Customer) error {
	return replaceTable(ctx, s.db, silver.Customer{}, rows)
}

// ReplaceProducts rewrites the cleansed product table
func (s *GormSilverSink) ReplaceProducts(ctx context.Context, rows []silver.Product) error {
	return replaceTable(ctx, s.db, silver.Product{}, rows)
}

// ReplaceSales rewrites the cleansed sales table
func (s *GormSilverSink) ReplaceSales(ctx context.Context, rows []silver.Sale) error {
	return replaceTable(ctx, s.db, silver.Sale{}, rows)
}

// ReplaceDimCustomers rewrites the customer dimension
func (s *GormSilverSink) ReplaceDimCustomers(ctx context.Context, rows []silver.DimCustomer) error {
	return replaceTable(ctx, s.db, silver.DimCustomer{}, rows)
}

// ReplaceDimProducts rewrites the product dimension
func (s *GormSilverSink) ReplaceDimProducts(ctx context.Context, rows []silver.DimProduct) error {
	return replaceTable(ctx, s.db, silver.DimProduct{}, rows)
}

// ReplaceFactSales rewrites the sales fact table
func (s *GormSilverSink) ReplaceFactSales(ctx context.Context, rows []silver.FactSale) error {
	return replaceTable(ctx, s.db, silver.FactSale{}, rows)
}

// replaceTable deletes every row of the model's table and inserts the new
// batch, all in one transaction.
func replaceTable[T any](ctx context.Context, db *gorm.DB, model T, rows []T) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("replacing %T rows: %w", model, err)
	}
	return nil
}

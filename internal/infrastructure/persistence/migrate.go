package persistence

import (
	"fmt"

	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/domain/silver"
)

// Migrate creates or updates the warehouse schema: the raw bronze landing
// tables, the cleansed silver tables, and the gold dimensional tables.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(
		&bronze.CrmCustomer{},
		&bronze.CrmProduct{},
		&bronze.CrmSale{},
		&bronze.ErpCustomer{},
		&bronze.ErpLocation{},
		&bronze.ErpProductCategory{},
		&silver.Customer{},
		&silver.Product{},
		&silver.Sale{},
		&silver.DimCustomer{},
		&silver.DimProduct{},
		&silver.FactSale{},
	); err != nil {
		return fmt.Errorf("migrating warehouse schema: %w", err)
	}
	return nil
}

package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dwh/etl/internal/domain/bronze"
)

// GormBronzeSource implements bronze.Source over landed bronze tables
type GormBronzeSource struct {
	db *gorm.DB
}

// NewGormBronzeSource creates a new GormBronzeSource
func NewGormBronzeSource(db *gorm.DB) *GormBronzeSource {
	return &GormBronzeSource{db: db}
}

// CrmCustomers loads all raw CRM customer rows
func (s *GormBronzeSource) CrmCustomers(ctx context.Context) ([]bronze.CrmCustomer, error) {
	var rows []bronze.CrmCustomer
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading bronze crm customers: %w", err)
	}
	return rows, nil
}

// CrmProducts loads all raw CRM product rows
func (s *GormBronzeSource) CrmProducts(ctx context.Context) ([]bronze.CrmProduct, error) {
	var rows []bronze.CrmProduct
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading bronze crm products: %w", err)
	}
	return rows, nil
}

// CrmSales loads all raw CRM sales-detail rows
func (s *GormBronzeSource) CrmSales(ctx context.Context) ([]bronze.CrmSale, error) {
	var rows []bronze.CrmSale
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading bronze crm sales: %w", err)
	}
	return rows, nil
}

// ErpCustomers loads all raw ERP customer attribute rows
func (s *GormBronzeSource) ErpCustomers(ctx context.Context) ([]bronze.ErpCustomer, error) {
	var rows []bronze.ErpCustomer
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading bronze erp customers: %w", err)
	}
	return rows, nil
}

// ErpLocations loads all raw ERP location rows
func (s *GormBronzeSource) ErpLocations(ctx context.Context) ([]bronze.ErpLocation, error) {
	var rows []bronze.ErpLocation
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading bronze erp locations: %w", err)
	}
	return rows, nil
}

// ErpProductCategories loads all raw ERP product category rows
func (s *GormBronzeSource) ErpProductCategories(ctx context.Context) ([]bronze.ErpProductCategory, error) {
	var rows []bronze.ErpProductCategory
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading bronze erp product categories: %w", err)
	}
	return rows, nil
}

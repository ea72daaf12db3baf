package bronze

import "context"

// Source provides the raw extract tables consumed by the pipeline. How the
// tables are materialized (database, CSV directory) is an infrastructure
// concern; the pipeline only requires fully loaded row collections.
type Source interface {
	CrmCustomers(ctx context.Context) ([]CrmCustomer, error)
	CrmProducts(ctx context.Context) ([]CrmProduct, error)
	CrmSales(ctx context.Context) ([]CrmSale, error)
	ErpCustomers(ctx context.Context) ([]ErpCustomer, error)
	ErpLocations(ctx context.Context) ([]ErpLocation, error)
	ErpProductCategories(ctx context.Context) ([]ErpProductCategory, error)
}

package silver

import "context"

// Sink persists cleaned and dimensional rows. Each Replace call carries
// full-refresh semantics: the target table is emptied and reloaded in a
// single transaction, matching the batch, whole-table load model.
type Sink interface {
	ReplaceCustomers(ctx context.Context, rows []Customer) error
	ReplaceProducts(ctx context.Context, rows []Product) error
	ReplaceSales(ctx context.Context, rows []Sale) error
	ReplaceDimCustomers(ctx context.Context, rows []DimCustomer) error
	ReplaceDimProducts(ctx context.Context, rows []DimProduct) error
	ReplaceFactSales(ctx context.Context, rows []FactSale) error
}

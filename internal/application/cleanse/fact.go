package cleanse

import (
	"fmt"

	"github.com/dwh/etl/internal/application/quality"
	"github.com/dwh/etl/internal/domain/silver"
)

// BuildFactSales joins the repaired sales rows to both dimensions by their
// business identifiers, swapping natural keys for surrogate keys. The join
// is left-outer from the sales side: a sale whose product or customer lookup
// fails keeps a zero key and is reported as an orphan reference, matching
// the full-refresh load where facts are never silently dropped.
func BuildFactSales(
	sales []silver.Sale,
	products []silver.DimProduct,
	customers []silver.DimCustomer,
) ([]silver.FactSale, []quality.Issue) {
	var issues []quality.Issue

	productKeyBySKU := make(map[string]int64, len(products))
	for _, p := range products {
		productKeyBySKU[p.ProductNumber] = p.ProductKey
	}
	customerKeyByID := make(map[int64]int64, len(customers))
	for _, c := range customers {
		customerKeyByID[c.CustomerID] = c.CustomerKey
	}

	out := make([]silver.FactSale, 0, len(sales))
	for _, sale := range sales {
		fact := silver.FactSale{
			OrderNumber: sale.OrderNumber,
			OrderDate:   sale.OrderDate,
			ShipDate:    sale.ShipDate,
			DueDate:     sale.DueDate,
			SalesAmount: sale.SalesAmount,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
		}

		if key, ok := productKeyBySKU[sale.ProductSKU]; ok {
			fact.ProductKey = key
		} else {
			issues = append(issues, quality.NewIssueWithValue(
				sale.OrderNumber, "sls_prd_key", quality.ReasonOrphanReference,
				"sale references unknown product", sale.ProductSKU))
		}

		if key, ok := customerKeyByID[sale.CustomerID]; ok {
			fact.CustomerKey = key
		} else {
			issues = append(issues, quality.NewIssueWithValue(
				sale.OrderNumber, "sls_cust_id", quality.ReasonOrphanReference,
				"sale references unknown customer", fmt.Sprintf("%d", sale.CustomerID)))
		}

		out = append(out, fact)
	}
	return out, issues
}

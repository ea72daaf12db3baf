package cleanse

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dwh/etl/internal/application/quality"
	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/domain/silver"
)

// ProductEnricher cleans the raw product history: it decomposes the
// composite product key into category id and SKU, normalizes the product
// line, defaults missing costs to zero, and re-derives the slowly-changing
// end dates so version windows never overlap.
type ProductEnricher struct{}

// Enrich produces the silver product history. Rows keep their input identity
// but version end dates are recomputed: each version ends the day before the
// next version of the same SKU starts, and the latest version stays open.
func (e ProductEnricher) Enrich(rows []bronze.CrmProduct) ([]silver.Product, []quality.Issue) {
	var issues []quality.Issue

	out := make([]silver.Product, 0, len(rows))
	for _, row := range rows {
		if row.StartDate == nil {
			issues = append(issues, quality.NewIssueWithValue(
				row.ProductKey, "prd_start_dt", quality.ReasonMalformedDate,
				"product version has no start date, row dropped", ""))
			continue
		}

		product := silver.Product{
			ProductID:  row.ProductID,
			CategoryID: categoryID(row.ProductKey),
			SKU:        productSKU(row.ProductKey),
			Name:       TrimName(row.Name),
			Cost:       decimal.Zero,
			Line:       NormalizeProductLine(row.Line),
			StartDate:  *row.StartDate,
		}
		if row.Cost.Valid {
			product.Cost = row.Cost.Decimal
		}
		out = append(out, product)
	}

	deriveEndDates(out)
	return out, issues
}

// categoryID extracts the category id from the composite key: the first five
// characters with dashes replaced by underscores, matching the ERP category
// table's id format.
func categoryID(productKey string) string {
	key := strings.TrimSpace(productKey)
	if len(key) < 5 {
		return ""
	}
	return strings.ReplaceAll(key[:5], "-", "_")
}

// productSKU extracts the SKU from the composite key: everything after the
// category prefix and its separator.
func productSKU(productKey string) string {
	key := strings.TrimSpace(productKey)
	if len(key) <= 6 {
		return ""
	}
	return key[6:]
}

// deriveEndDates recomputes version validity windows per SKU. Versions are
// ordered by start date; each closes the day before its successor opens. The
// raw end dates from the source are ignored because they are known to
// overlap the following version.
func deriveEndDates(products []silver.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].SKU != products[j].SKU {
			return products[i].SKU < products[j].SKU
		}
		return products[i].StartDate.Before(products[j].StartDate)
	})

	for i := range products {
		products[i].EndDate = nil
		if i+1 < len(products) && products[i+1].SKU == products[i].SKU {
			end := products[i+1].StartDate.AddDate(0, 0, -1)
			products[i].EndDate = &end
		}
	}
}

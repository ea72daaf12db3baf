package cleanse

import (
	"github.com/dwh/etl/internal/application/quality"
	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/domain/silver"
)

// BuildDimProducts joins active product versions with the ERP category
// attributes keyed by the decomposed category id. Products whose category id
// has no ERP counterpart keep "n/a" attributes and are reported as orphan
// references. Surrogate keys are assigned separately by the KeyAssigner.
func BuildDimProducts(active []silver.Product, categories []bronze.ErpProductCategory) ([]silver.DimProduct, []quality.Issue) {
	var issues []quality.Issue

	catByID := make(map[string]bronze.ErpProductCategory, len(categories))
	for _, cat := range categories {
		catByID[cat.CategoryID] = cat
	}

	out := make([]silver.DimProduct, 0, len(active))
	for _, product := range active {
		dim := silver.DimProduct{
			ProductID:     product.ProductID,
			ProductNumber: product.SKU,
			Name:          product.Name,
			CategoryID:    product.CategoryID,
			Category:      silver.NotAvailable,
			Subcategory:   silver.NotAvailable,
			Maintenance:   silver.NotAvailable,
			Cost:          product.Cost,
			Line:          product.Line,
			StartDate:     product.StartDate,
		}

		if cat, ok := catByID[product.CategoryID]; ok {
			dim.Category = cat.Category
			dim.Subcategory = cat.Subcategory
			dim.Maintenance = cat.Maintenance
		} else {
			issues = append(issues, quality.NewIssueWithValue(
				product.SKU, "cat_id", quality.ReasonOrphanReference,
				"no ERP category attributes for category id", product.CategoryID))
		}

		out = append(out, dim)
	}
	return out, issues
}

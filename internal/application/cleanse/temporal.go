package cleanse

import "github.com/dwh/etl/internal/domain/silver"

// ActiveFilter selects the currently valid rows of a slowly-changing
// dimension. Activity is determined solely by the explicit end-date marker:
// a nil end date means the version is still open. There is no "latest wins"
// heuristic here; history rows with an end date are simply excluded.
type ActiveFilter struct{}

// ActiveProducts returns the product versions whose validity window is open.
func (ActiveFilter) ActiveProducts(rows []silver.Product) []silver.Product {
	out := make([]silver.Product, 0, len(rows))
	for _, row := range rows {
		if row.Active() {
			out = append(out, row)
		}
	}
	return out
}

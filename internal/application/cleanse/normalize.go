package cleanse

import (
	"strings"

	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/domain/silver"
)

// Categorical normalizers. All of them trim and case-fold before mapping,
// and all are idempotent: feeding a canonical label back in returns the same
// label. Anything outside the known vocabulary maps to "n/a".

// NormalizeGender maps raw gender codes to the canonical vocabulary.
func NormalizeGender(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "F", "FEMALE":
		return "Female"
	case "M", "MALE":
		return "Male"
	default:
		return silver.NotAvailable
	}
}

// NormalizeMaritalStatus maps raw marital status codes to the canonical
// vocabulary.
func NormalizeMaritalStatus(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "S", "SINGLE":
		return "Single"
	case "M", "MARRIED":
		return "Married"
	default:
		return silver.NotAvailable
	}
}

// NormalizeProductLine maps raw product line codes to descriptive labels.
func NormalizeProductLine(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "MOUNTAIN":
		return "Mountain"
	case "R", "ROAD":
		return "Road"
	case "S", "OTHER SALES":
		return "Other Sales"
	case "T", "TOURING":
		return "Touring"
	default:
		return silver.NotAvailable
	}
}

// NormalizeCountry maps ERP country codes to full country names. Unknown
// non-empty values pass through trimmed, since the source also carries full
// names for most countries.
func NormalizeCountry(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToUpper(trimmed) {
	case "DE":
		return "Germany"
	case "US", "USA":
		return "United States"
	case "":
		return silver.NotAvailable
	default:
		return trimmed
	}
}

// TrimName removes surrounding whitespace from a name field. Internal
// whitespace is preserved.
func TrimName(raw string) string {
	return strings.TrimSpace(raw)
}

// NormalizeCustomers projects deduplicated raw customers into silver rows.
// Callers must run the deduplicator first: every input row needs a non-nil
// customer id.
func NormalizeCustomers(rows []bronze.CrmCustomer) []silver.Customer {
	out := make([]silver.Customer, 0, len(rows))
	for _, row := range rows {
		customer := silver.Customer{
			CustomerID:    *row.CustomerID,
			CustomerKey:   strings.TrimSpace(row.CustomerKey),
			FirstName:     TrimName(row.FirstName),
			LastName:      TrimName(row.LastName),
			MaritalStatus: NormalizeMaritalStatus(row.MaritalStatus),
			Gender:        NormalizeGender(row.Gender),
		}
		if row.CreatedAt != nil {
			customer.CreatedAt = *row.CreatedAt
		}
		out = append(out, customer)
	}
	return out
}

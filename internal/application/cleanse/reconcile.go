package cleanse

import (
	"strings"
	"time"

	"github.com/dwh/etl/internal/application/quality"
	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/domain/silver"
)

// SourceSystem identifies where an attribute value came from.
type SourceSystem string

const (
	SourceCRM SourceSystem = "crm"
	SourceERP SourceSystem = "erp"
)

// SourcePrecedence resolves attribute conflicts between source systems with
// a strict priority order: the first source in the order whose value is not
// "n/a" wins. Adding a source means extending the order, not restructuring
// the merge.
type SourcePrecedence struct {
	order []SourceSystem
}

// NewSourcePrecedence creates a precedence policy with the given order.
func NewSourcePrecedence(order ...SourceSystem) SourcePrecedence {
	return SourcePrecedence{order: order}
}

// CRMFirst is the default policy: CRM is authoritative, ERP fills gaps.
func CRMFirst() SourcePrecedence {
	return NewSourcePrecedence(SourceCRM, SourceERP)
}

// Resolve picks the winning value. Missing and "n/a" values lose to any
// concrete value from a lower-priority source; if nothing concrete exists
// the result is "n/a".
func (p SourcePrecedence) Resolve(values map[SourceSystem]string) string {
	for _, source := range p.order {
		if v, ok := values[source]; ok && v != "" && v != silver.NotAvailable {
			return v
		}
	}
	return silver.NotAvailable
}

// CustomerReconciler merges cleaned CRM customers with ERP customer and
// location attributes. CRM drives dimension membership: the join is a left
// outer join on the business key, and ERP rows without a CRM counterpart are
// dropped.
type CustomerReconciler struct {
	precedence SourcePrecedence
	now        func() time.Time
}

// NewCustomerReconciler creates a reconciler with the CRM-first policy.
func NewCustomerReconciler() CustomerReconciler {
	return CustomerReconciler{precedence: CRMFirst(), now: time.Now}
}

// Reconcile produces one dimension row per CRM customer. Surrogate keys are
// not assigned here; the KeyAssigner owns that.
func (r CustomerReconciler) Reconcile(
	customers []silver.Customer,
	erpCustomers []bronze.ErpCustomer,
	erpLocations []bronze.ErpLocation,
) ([]silver.DimCustomer, []quality.Issue) {
	var issues []quality.Issue

	erpByKey := make(map[string]bronze.ErpCustomer, len(erpCustomers))
	for _, row := range erpCustomers {
		erpByKey[standardizeErpCustomerKey(row.CustomerKey)] = row
	}
	countryByKey := make(map[string]string, len(erpLocations))
	for _, row := range erpLocations {
		countryByKey[standardizeErpLocationKey(row.CustomerKey)] = row.Country
	}

	now := r.now()
	out := make([]silver.DimCustomer, 0, len(customers))
	for _, customer := range customers {
		dim := silver.DimCustomer{
			CustomerID:     customer.CustomerID,
			CustomerNumber: customer.CustomerKey,
			FirstName:      customer.FirstName,
			LastName:       customer.LastName,
			MaritalStatus:  customer.MaritalStatus,
			CreatedAt:      customer.CreatedAt,
			Country:        silver.NotAvailable,
		}

		values := map[SourceSystem]string{SourceCRM: customer.Gender}
		if erp, ok := erpByKey[customer.CustomerKey]; ok {
			values[SourceERP] = NormalizeGender(erp.Gender)
			dim.BirthDate = r.checkBirthDate(customer.CustomerKey, erp.BirthDate, now, &issues)
		}
		dim.Gender = r.precedence.Resolve(values)

		if country, ok := countryByKey[customer.CustomerKey]; ok {
			dim.Country = NormalizeCountry(country)
		}

		out = append(out, dim)
	}
	return out, issues
}

// checkBirthDate rejects birthdates in the future; those map to nil and are
// reported rather than propagated.
func (r CustomerReconciler) checkBirthDate(key string, birthDate *time.Time, now time.Time, issues *[]quality.Issue) *time.Time {
	if birthDate == nil {
		return nil
	}
	if birthDate.After(now) {
		*issues = append(*issues, quality.NewIssueWithValue(
			key, "bdate", quality.ReasonFutureBirthdate,
			"birthdate is in the future, mapped to null",
			birthDate.Format("2006-01-02")))
		return nil
	}
	return birthDate
}

// standardizeErpCustomerKey aligns ERP customer keys with CRM business keys.
// The ERP feed prefixes some keys with "NAS".
func standardizeErpCustomerKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "NAS") {
		return key[3:]
	}
	return key
}

// standardizeErpLocationKey aligns ERP location keys with CRM business keys.
// The location feed embeds dashes the CRM keys do not have.
func standardizeErpLocationKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "-", "")
}

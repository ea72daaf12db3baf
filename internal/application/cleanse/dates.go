package cleanse

import (
	"fmt"
	"time"

	"github.com/dwh/etl/internal/application/quality"
	"github.com/dwh/etl/internal/domain/bronze"
)

// Default sanity bounds for raw YYYYMMDD integers. Values outside this window
// are treated as data errors, not real dates.
const (
	DefaultMinDate int64 = 19000101
	DefaultMaxDate int64 = 20250101
)

const rawDateLayout = "20060102"

// DateValidator parses integer-encoded dates from the source feeds. A raw
// value is valid iff it is positive, exactly eight digits, inside the
// configured bounds, and an actual calendar date. Invalid values map to nil
// and an issue; parsing never fails the batch.
type DateValidator struct {
	Min int64
	Max int64
}

// NewDateValidator creates a validator with the given bounds; zero bounds
// fall back to the defaults.
func NewDateValidator(min, max int64) DateValidator {
	if min == 0 {
		min = DefaultMinDate
	}
	if max == 0 {
		max = DefaultMaxDate
	}
	return DateValidator{Min: min, Max: max}
}

// Parse converts a raw YYYYMMDD integer to a calendar date. The returned
// issue carries the reason and offending value; the caller attributes it to a
// row and field.
func (v DateValidator) Parse(raw int64) (*time.Time, *quality.Issue) {
	if raw <= 0 || digitCount(raw) != 8 {
		issue := quality.Issue{
			Reason:  quality.ReasonMalformedDate,
			Message: "date must be a positive 8-digit YYYYMMDD integer",
			Value:   fmt.Sprintf("%d", raw),
		}
		return nil, &issue
	}
	if raw < v.Min || raw > v.Max {
		issue := quality.Issue{
			Reason:  quality.ReasonDateOutOfRange,
			Message: fmt.Sprintf("date outside sanity bounds [%d, %d]", v.Min, v.Max),
			Value:   fmt.Sprintf("%d", raw),
		}
		return nil, &issue
	}

	parsed, err := time.Parse(rawDateLayout, fmt.Sprintf("%08d", raw))
	if err != nil {
		issue := quality.Issue{
			Reason:  quality.ReasonMalformedDate,
			Message: "value has eight digits but is not a calendar date",
			Value:   fmt.Sprintf("%d", raw),
		}
		return nil, &issue
	}
	return &parsed, nil
}

// Valid reports whether a raw value passes the validity predicate.
func (v DateValidator) Valid(raw int64) bool {
	_, issue := v.Parse(raw)
	return issue == nil
}

// Audit lists every sales row with an invalid order, ship, or due date.
// Read-only: the input is not modified and nothing is corrected.
func (v DateValidator) Audit(rows []bronze.CrmSale) []quality.Issue {
	var issues []quality.Issue
	for _, row := range rows {
		for _, field := range []struct {
			name string
			raw  int64
		}{
			{"sls_order_dt", row.OrderDateRaw},
			{"sls_ship_dt", row.ShipDateRaw},
			{"sls_due_dt", row.DueDateRaw},
		} {
			if _, issue := v.Parse(field.raw); issue != nil {
				attributed := *issue
				attributed.Key = row.OrderNumber
				attributed.Field = field.name
				issues = append(issues, attributed)
			}
		}
	}
	return issues
}

func digitCount(n int64) int {
	count := 0
	for n > 0 {
		count++
		n /= 10
	}
	return count
}

package cleanse

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwh/etl/internal/application/quality"
	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/domain/silver"
)

// SalesRepairer enforces the sales = quantity x |unit price| invariant over
// the sales stream, repairing violations rather than discarding rows. The
// quantity is trusted; price and amount are not. Rows whose quantity is null
// or non-positive have no safe repair and are routed to the exceptions
// report instead of the silver output.
//
// Repair is idempotent: rows that already satisfy the invariant pass through
// unchanged with their repair flags unset.
type SalesRepairer struct {
	dates DateValidator
}

// NewSalesRepairer creates a repairer that also resolves the row's raw
// integer dates through the given validator.
func NewSalesRepairer(dates DateValidator) SalesRepairer {
	return SalesRepairer{dates: dates}
}

// Repair produces the silver sales rows and the exceptions for rows it could
// not make consistent. Date issues are reported but do not exclude a row;
// measure issues do.
func (r SalesRepairer) Repair(rows []bronze.CrmSale) ([]silver.Sale, []quality.Issue) {
	out := make([]silver.Sale, 0, len(rows))
	var issues []quality.Issue

	for _, row := range rows {
		sale, rowIssues, ok := r.repairRow(row)
		issues = append(issues, rowIssues...)
		if ok {
			out = append(out, sale)
		}
	}
	return out, issues
}

// repairRow applies the repair steps to one row. ok is false when the row is
// irrecoverable and must be excluded from the silver output.
func (r SalesRepairer) repairRow(row bronze.CrmSale) (silver.Sale, []quality.Issue, bool) {
	var issues []quality.Issue

	sale := silver.Sale{
		OrderNumber:         row.OrderNumber,
		ProductSKU:          row.ProductKey,
		OriginalSalesAmount: row.SalesAmount,
		OriginalUnitPrice:   row.UnitPrice,
	}
	if row.CustomerID != nil {
		sale.CustomerID = *row.CustomerID
	}

	sale.OrderDate = r.parseDate(row, "sls_order_dt", row.OrderDateRaw, &issues)
	sale.ShipDate = r.parseDate(row, "sls_ship_dt", row.ShipDateRaw, &issues)
	sale.DueDate = r.parseDate(row, "sls_due_dt", row.DueDateRaw, &issues)

	quantity := int64(0)
	if row.Quantity != nil {
		quantity = *row.Quantity
	}

	// Step 1: back-calculate a missing or non-positive price from the
	// reported amount. Null-safe: a zero quantity yields a null price,
	// never a panic.
	price := row.UnitPrice
	if !price.Valid || price.Decimal.Sign() <= 0 {
		price = nullSafeDivide(row.SalesAmount, quantity)
		if row.SalesAmount.Valid && quantity == 0 {
			issues = append(issues, quality.NewIssueWithValue(
				row.OrderNumber, "sls_price", quality.ReasonDivisionByZero,
				"price back-calculation divided by zero quantity, price stays null",
				row.SalesAmount.Decimal.String()))
		}
		sale.PriceRepaired = true
	}

	// Step 2: recompute the amount whenever it is missing, non-positive, or
	// inconsistent with quantity x |price|.
	amount := row.SalesAmount
	if price.Valid {
		expected := decimal.NewFromInt(quantity).Mul(price.Decimal.Abs())
		if !amount.Valid || amount.Decimal.Sign() <= 0 || !amount.Decimal.Equal(expected) {
			amount = decimal.NullDecimal{Decimal: expected, Valid: true}
			sale.AmountRepaired = true
		}
	}

	// Step 3: without a positive quantity the rule has no safe repair.
	if row.Quantity == nil || quantity <= 0 {
		issues = append(issues, quality.NewIssueWithValue(
			row.OrderNumber, "sls_quantity", quality.ReasonUnrepairableMeasure,
			"quantity is null or non-positive, row excluded from silver output",
			formatQuantity(row.Quantity)))
		return silver.Sale{}, issues, false
	}

	// Rows where both amount and price were unusable end up with nothing to
	// reconstruct the measures from.
	if !price.Valid || price.Decimal.Sign() <= 0 || !amount.Valid || amount.Decimal.Sign() <= 0 {
		issues = append(issues, quality.NewIssue(
			row.OrderNumber, "sls_sales", quality.ReasonUnrepairableMeasure,
			"neither amount nor price usable, row excluded from silver output"))
		return silver.Sale{}, issues, false
	}

	sale.Quantity = quantity
	sale.UnitPrice = price.Decimal.Abs()
	sale.SalesAmount = amount.Decimal
	return sale, issues, true
}

// Audit lists every row violating the measure invariant without repairing
// anything. Read-only.
func (r SalesRepairer) Audit(rows []bronze.CrmSale) []quality.Issue {
	var issues []quality.Issue
	for _, row := range rows {
		if row.Quantity == nil || *row.Quantity <= 0 {
			issues = append(issues, quality.NewIssueWithValue(
				row.OrderNumber, "sls_quantity", quality.ReasonUnrepairableMeasure,
				"quantity is null or non-positive", formatQuantity(row.Quantity)))
			continue
		}
		if !row.UnitPrice.Valid || row.UnitPrice.Decimal.Sign() <= 0 {
			issues = append(issues, quality.NewIssue(
				row.OrderNumber, "sls_price", quality.ReasonUnrepairableMeasure,
				"unit price is null or non-positive"))
			continue
		}
		expected := decimal.NewFromInt(*row.Quantity).Mul(row.UnitPrice.Decimal.Abs())
		if !row.SalesAmount.Valid || !row.SalesAmount.Decimal.Equal(expected) {
			issues = append(issues, quality.NewIssueWithValue(
				row.OrderNumber, "sls_sales", quality.ReasonUnrepairableMeasure,
				fmt.Sprintf("sales amount does not equal quantity x |price| (%s)", expected),
				formatAmount(row.SalesAmount)))
		}
	}
	return issues
}

func (r SalesRepairer) parseDate(row bronze.CrmSale, field string, raw int64, issues *[]quality.Issue) *time.Time {
	parsed, issue := r.dates.Parse(raw)
	if issue != nil {
		attributed := *issue
		attributed.Key = row.OrderNumber
		attributed.Field = field
		*issues = append(*issues, attributed)
		return nil
	}
	return parsed
}

// nullSafeDivide divides amount by quantity, yielding the null decimal when
// either operand is unusable. Mirrors SQL NULLIF division semantics.
func nullSafeDivide(amount decimal.NullDecimal, quantity int64) decimal.NullDecimal {
	if !amount.Valid || quantity == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: amount.Decimal.Div(decimal.NewFromInt(quantity)),
		Valid:   true,
	}
}

func formatQuantity(q *int64) string {
	if q == nil {
		return ""
	}
	return fmt.Sprintf("%d", *q)
}

func formatAmount(a decimal.NullDecimal) string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.String()
}

package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/domain/shared"
)

// Extract file layout under the configured directory. Names follow the
// source systems' export conventions.
const (
	crmCustomerFile = "source_crm/cust_info.csv"
	crmProductFile  = "source_crm/prd_info.csv"
	crmSalesFile    = "source_crm/sales_details.csv"
	erpCustomerFile = "source_erp/CUST_AZ12.csv"
	erpLocationFile = "source_erp/LOC_A101.csv"
	erpCategoryFile = "source_erp/PX_CAT_G1V2.csv"
)

const extractDateLayout = "2006-01-02"

// CSVSource implements bronze.Source over a directory of raw extract files.
// The bronze layer is permissive: fields that fail typed parsing land as
// null/zero values and are logged, leaving the judgement calls to the
// cleansing pipeline.
type CSVSource struct {
	dir         string
	delimiter   rune
	maxFileSize int64
	logger      *zap.Logger
}

// NewCSVSource creates a source rooted at dir. Files larger than maxFileSize
// bytes are refused; zero disables the limit.
func NewCSVSource(dir string, delimiter rune, maxFileSize int64, logger *zap.Logger) *CSVSource {
	return &CSVSource{
		dir:         dir,
		delimiter:   delimiter,
		maxFileSize: maxFileSize,
		logger:      logger.Named("extract"),
	}
}

// CrmCustomers reads the raw CRM customer extract
func (s *CSVSource) CrmCustomers(ctx context.Context) ([]bronze.CrmCustomer, error) {
	rows, err := s.readFile(ctx, crmCustomerFile, []string{"cst_id", "cst_key"})
	if err != nil {
		return nil, err
	}

	out := make([]bronze.CrmCustomer, 0, len(rows))
	for _, row := range rows {
		out = append(out, bronze.CrmCustomer{
			CustomerID:    s.parseInt(row, "cst_id"),
			CustomerKey:   row.Get("cst_key"),
			FirstName:     row.Get("cst_firstname"),
			LastName:      row.Get("cst_lastname"),
			MaritalStatus: row.Get("cst_marital_status"),
			Gender:        row.Get("cst_gndr"),
			CreatedAt:     s.parseDate(row, "cst_create_date"),
		})
	}
	return out, nil
}

// CrmProducts reads the raw CRM product extract
func (s *CSVSource) CrmProducts(ctx context.Context) ([]bronze.CrmProduct, error) {
	rows, err := s.readFile(ctx, crmProductFile, []string{"prd_id", "prd_key"})
	if err != nil {
		return nil, err
	}

	out := make([]bronze.CrmProduct, 0, len(rows))
	for _, row := range rows {
		product := bronze.CrmProduct{
			ProductKey: row.Get("prd_key"),
			Name:       row.Get("prd_nm"),
			Cost:       s.parseDecimal(row, "prd_cost"),
			Line:       row.Get("prd_line"),
			StartDate:  s.parseDate(row, "prd_start_dt"),
			EndDateRaw: s.parseDate(row, "prd_end_dt"),
		}
		if id := s.parseInt(row, "prd_id"); id != nil {
			product.ProductID = *id
		}
		out = append(out, product)
	}
	return out, nil
}

// CrmSales reads the raw CRM sales-detail extract
func (s *CSVSource) CrmSales(ctx context.Context) ([]bronze.CrmSale, error) {
	rows, err := s.readFile(ctx, crmSalesFile, []string{"sls_ord_num", "sls_prd_key"})
	if err != nil {
		return nil, err
	}

	out := make([]bronze.CrmSale, 0, len(rows))
	for _, row := range rows {
		sale := bronze.CrmSale{
			OrderNumber: row.Get("sls_ord_num"),
			ProductKey:  row.Get("sls_prd_key"),
			CustomerID:  s.parseInt(row, "sls_cust_id"),
			SalesAmount: s.parseDecimal(row, "sls_sales"),
			Quantity:    s.parseInt(row, "sls_quantity"),
			UnitPrice:   s.parseDecimal(row, "sls_price"),
		}
		if raw := s.parseInt(row, "sls_order_dt"); raw != nil {
			sale.OrderDateRaw = *raw
		}
		if raw := s.parseInt(row, "sls_ship_dt"); raw != nil {
			sale.ShipDateRaw = *raw
		}
		if raw := s.parseInt(row, "sls_due_dt"); raw != nil {
			sale.DueDateRaw = *raw
		}
		out = append(out, sale)
	}
	return out, nil
}

// ErpCustomers reads the raw ERP customer attribute extract
func (s *CSVSource) ErpCustomers(ctx context.Context) ([]bronze.ErpCustomer, error) {
	rows, err := s.readFile(ctx, erpCustomerFile, []string{"CID"})
	if err != nil {
		return nil, err
	}

	out := make([]bronze.ErpCustomer, 0, len(rows))
	for _, row := range rows {
		out = append(out, bronze.ErpCustomer{
			CustomerKey: row.Get("CID"),
			BirthDate:   s.parseDate(row, "BDATE"),
			Gender:      row.Get("GEN"),
		})
	}
	return out, nil
}

// ErpLocations reads the raw ERP location extract
func (s *CSVSource) ErpLocations(ctx context.Context) ([]bronze.ErpLocation, error) {
	rows, err := s.readFile(ctx, erpLocationFile, []string{"CID"})
	if err != nil {
		return nil, err
	}

	out := make([]bronze.ErpLocation, 0, len(rows))
	for _, row := range rows {
		out = append(out, bronze.ErpLocation{
			CustomerKey: row.Get("CID"),
			Country:     row.Get("CNTRY"),
		})
	}
	return out, nil
}

// ErpProductCategories reads the raw ERP product category extract
func (s *CSVSource) ErpProductCategories(ctx context.Context) ([]bronze.ErpProductCategory, error) {
	rows, err := s.readFile(ctx, erpCategoryFile, []string{"ID"})
	if err != nil {
		return nil, err
	}

	out := make([]bronze.ErpProductCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, bronze.ErpProductCategory{
			CategoryID:  row.Get("ID"),
			Category:    row.Get("CAT"),
			Subcategory: row.Get("SUBCAT"),
			Maintenance: row.Get("MAINTENANCE"),
		})
	}
	return out, nil
}

// readFile opens one extract file, checks its required headers, and returns
// all data rows.
func (s *CSVSource) readFile(ctx context.Context, name string, required []string) ([]*Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(name))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening extract %s: %w", name, err)
	}
	defer file.Close()

	if s.maxFileSize > 0 {
		info, err := file.Stat()
		if err != nil {
			return nil, fmt.Errorf("inspecting extract %s: %w", name, err)
		}
		if info.Size() > s.maxFileSize {
			return nil, fmt.Errorf("extract %s is %d bytes, exceeding the %d byte limit", name, info.Size(), s.maxFileSize)
		}
	}

	parser, err := NewCSVParser(file, WithDelimiter(s.delimiter))
	if err != nil {
		return nil, fmt.Errorf("parsing extract %s: %w", name, err)
	}
	if missing := parser.MissingHeaders(required); len(missing) > 0 {
		return nil, fmt.Errorf("extract %s: %w: %s", name, shared.ErrMissingColumn, strings.Join(missing, ", "))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, fmt.Errorf("reading extract %s: %w", name, err)
	}
	s.logger.Debug("extract loaded", zap.String("file", name), zap.Int("rows", len(rows)))
	return rows, nil
}

// parseInt parses an integer field, nil when empty or unparseable.
func (s *CSVSource) parseInt(row *Row, column string) *int64 {
	raw := strings.TrimSpace(row.Get(column))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Debug("unparseable integer field",
			zap.String("column", column), zap.Int("line", row.LineNumber), zap.String("value", raw))
		return nil
	}
	return &v
}

// parseDecimal parses a decimal field, null when empty or unparseable.
func (s *CSVSource) parseDecimal(row *Row, column string) decimal.NullDecimal {
	raw := strings.TrimSpace(row.Get(column))
	if raw == "" {
		return decimal.NullDecimal{}
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		s.logger.Debug("unparseable decimal field",
			zap.String("column", column), zap.Int("line", row.LineNumber), zap.String("value", raw))
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: v, Valid: true}
}

// parseDate parses an ISO date field, nil when empty or unparseable.
func (s *CSVSource) parseDate(row *Row, column string) *time.Time {
	raw := strings.TrimSpace(row.Get(column))
	if raw == "" {
		return nil
	}
	v, err := time.Parse(extractDateLayout, raw)
	if err != nil {
		s.logger.Debug("unparseable date field",
			zap.String("column", column), zap.Int("line", row.LineNumber), zap.String("value", raw))
		return nil
	}
	return &v
}

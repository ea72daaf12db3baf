package silver

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotAvailable is the canonical placeholder for missing categorical values.
const NotAvailable = "n/a"

// Customer is a cleaned, deduplicated CRM customer. Exactly one row exists
// per customer id, names are trimmed, and the categorical fields use the
// canonical vocabulary.
type Customer struct {
	CustomerID    int64     `gorm:"column:cst_id;primaryKey"`
	CustomerKey   string    `gorm:"column:cst_key;type:varchar(50)"`
	FirstName     string    `gorm:"column:cst_firstname;type:varchar(100)"`
	LastName      string    `gorm:"column:cst_lastname;type:varchar(100)"`
	MaritalStatus string    `gorm:"column:cst_marital_status;type:varchar(20)"`
	Gender        string    `gorm:"column:cst_gndr;type:varchar(20)"`
	CreatedAt     time.Time `gorm:"column:cst_create_date"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "silver_crm_cust_info"
}

// Product is a cleaned product version row. The raw composite key is split
// into category id and SKU; EndDate is derived from the following version's
// start date, nil for the currently active version.
type Product struct {
	ProductID  int64           `gorm:"column:prd_id;primaryKey"`
	CategoryID string          `gorm:"column:cat_id;type:varchar(50)"`
	SKU        string          `gorm:"column:prd_key;type:varchar(50)"`
	Name       string          `gorm:"column:prd_nm;type:varchar(200)"`
	Cost       decimal.Decimal `gorm:"column:prd_cost;type:decimal(18,4)"`
	Line       string          `gorm:"column:prd_line;type:varchar(20)"`
	StartDate  time.Time       `gorm:"column:prd_start_dt"`
	EndDate    *time.Time      `gorm:"column:prd_end_dt"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "silver_crm_prd_info"
}

// Active reports whether the version is the current one.
func (p Product) Active() bool {
	return p.EndDate == nil
}

// Sale is a repaired sales-detail row. The pre-repair measure values are
// retained alongside the repaired ones so downstream audits can show the
// old/new pairs.
type Sale struct {
	OrderNumber string     `gorm:"column:sls_ord_num;type:varchar(50)"`
	ProductSKU  string     `gorm:"column:sls_prd_key;type:varchar(50)"`
	CustomerID  int64      `gorm:"column:sls_cust_id"`
	OrderDate   *time.Time `gorm:"column:sls_order_dt"`
	ShipDate    *time.Time `gorm:"column:sls_ship_dt"`
	DueDate     *time.Time `gorm:"column:sls_due_dt"`

	SalesAmount decimal.Decimal `gorm:"column:sls_sales;type:decimal(18,4)"`
	Quantity    int64           `gorm:"column:sls_quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:sls_price;type:decimal(18,4)"`

	OriginalSalesAmount decimal.NullDecimal `gorm:"column:sls_sales_orig;type:decimal(18,4)"`
	OriginalUnitPrice   decimal.NullDecimal `gorm:"column:sls_price_orig;type:decimal(18,4)"`
	AmountRepaired      bool                `gorm:"column:sls_sales_repaired"`
	PriceRepaired       bool                `gorm:"column:sls_price_repaired"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "silver_crm_sales_details"
}

// DimCustomer is the reconciled customer dimension row combining CRM and ERP
// attributes under the source-precedence policy.
type DimCustomer struct {
	CustomerKey    int64      `gorm:"column:customer_key;primaryKey"` // surrogate
	CustomerID     int64      `gorm:"column:customer_id"`
	CustomerNumber string     `gorm:"column:customer_number;type:varchar(50)"` // business key
	FirstName      string     `gorm:"column:first_name;type:varchar(100)"`
	LastName       string     `gorm:"column:last_name;type:varchar(100)"`
	Country        string     `gorm:"column:country;type:varchar(100)"`
	MaritalStatus  string     `gorm:"column:marital_status;type:varchar(20)"`
	Gender         string     `gorm:"column:gender;type:varchar(20)"`
	BirthDate      *time.Time `gorm:"column:birthdate"`
	CreatedAt      time.Time  `gorm:"column:create_date"`
}

// TableName returns the table name for GORM
func (DimCustomer) TableName() string {
	return "gold_dim_customers"
}

// DimProduct is the product dimension row: active product versions enriched
// with ERP category attributes.
type DimProduct struct {
	ProductKey    int64           `gorm:"column:product_key;primaryKey"` // surrogate
	ProductID     int64           `gorm:"column:product_id"`
	ProductNumber string          `gorm:"column:product_number;type:varchar(50)"` // SKU
	Name          string          `gorm:"column:product_name;type:varchar(200)"`
	CategoryID    string          `gorm:"column:category_id;type:varchar(50)"`
	Category      string          `gorm:"column:category;type:varchar(100)"`
	Subcategory   string          `gorm:"column:subcategory;type:varchar(100)"`
	Maintenance   string          `gorm:"column:maintenance;type:varchar(50)"`
	Cost          decimal.Decimal `gorm:"column:cost;type:decimal(18,4)"`
	Line          string          `gorm:"column:product_line;type:varchar(20)"`
	StartDate     time.Time       `gorm:"column:start_date"`
}

// TableName returns the table name for GORM
func (DimProduct) TableName() string {
	return "gold_dim_products"
}

// FactSale is the sales fact row carrying dimension surrogate keys. A key of
// zero marks a sale whose dimension lookup failed; those rows are also
// reported as orphan references.
type FactSale struct {
	OrderNumber string          `gorm:"column:order_number;type:varchar(50)"`
	ProductKey  int64           `gorm:"column:product_key"`
	CustomerKey int64           `gorm:"column:customer_key"`
	OrderDate   *time.Time      `gorm:"column:order_date"`
	ShipDate    *time.Time      `gorm:"column:shipping_date"`
	DueDate     *time.Time      `gorm:"column:due_date"`
	SalesAmount decimal.Decimal `gorm:"column:sales_amount;type:decimal(18,4)"`
	Quantity    int64           `gorm:"column:quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:price;type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (FactSale) TableName() string {
	return "gold_fact_sales"
}

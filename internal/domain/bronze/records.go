package bronze

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrmCustomer is a raw customer row from the CRM extract. Identifiers and
// timestamps are nullable because the bronze layer stores whatever arrived.
type CrmCustomer struct {
	CustomerID    *int64     `gorm:"column:cst_id"`
	CustomerKey   string     `gorm:"column:cst_key;type:varchar(50)"`
	FirstName     string     `gorm:"column:cst_firstname;type:varchar(100)"`
	LastName      string     `gorm:"column:cst_lastname;type:varchar(100)"`
	MaritalStatus string     `gorm:"column:cst_marital_status;type:varchar(50)"`
	Gender        string     `gorm:"column:cst_gndr;type:varchar(50)"`
	CreatedAt     *time.Time `gorm:"column:cst_create_date"`
}

// TableName returns the table name for GORM
func (CrmCustomer) TableName() string {
	return "bronze_crm_cust_info"
}

// CrmProduct is a raw product row from the CRM extract. The product key is a
// composite: the first five characters carry the category id, the rest the SKU.
type CrmProduct struct {
	ProductID   int64               `gorm:"column:prd_id"`
	ProductKey  string              `gorm:"column:prd_key;type:varchar(50)"`
	Name        string              `gorm:"column:prd_nm;type:varchar(200)"`
	Cost        decimal.NullDecimal `gorm:"column:prd_cost;type:decimal(18,4)"`
	Line        string              `gorm:"column:prd_line;type:varchar(50)"`
	StartDate   *time.Time          `gorm:"column:prd_start_dt"`
	EndDateRaw  *time.Time          `gorm:"column:prd_end_dt"`
}

// TableName returns the table name for GORM
func (CrmProduct) TableName() string {
	return "bronze_crm_prd_info"
}

// CrmSale is a raw sales-detail row. Dates are 8-digit YYYYMMDD integers as
// delivered by the source system; 0 means absent.
type CrmSale struct {
	OrderNumber  string              `gorm:"column:sls_ord_num;type:varchar(50)"`
	ProductKey   string              `gorm:"column:sls_prd_key;type:varchar(50)"`
	CustomerID   *int64              `gorm:"column:sls_cust_id"`
	OrderDateRaw int64               `gorm:"column:sls_order_dt"`
	ShipDateRaw  int64               `gorm:"column:sls_ship_dt"`
	DueDateRaw   int64               `gorm:"column:sls_due_dt"`
	SalesAmount  decimal.NullDecimal `gorm:"column:sls_sales;type:decimal(18,4)"`
	Quantity     *int64              `gorm:"column:sls_quantity"`
	UnitPrice    decimal.NullDecimal `gorm:"column:sls_price;type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (CrmSale) TableName() string {
	return "bronze_crm_sales_details"
}

// ErpCustomer carries secondary customer attributes from the ERP system,
// joined to CRM customers by business key.
type ErpCustomer struct {
	CustomerKey string     `gorm:"column:cid;type:varchar(50)"`
	BirthDate   *time.Time `gorm:"column:bdate"`
	Gender      string     `gorm:"column:gen;type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ErpCustomer) TableName() string {
	return "bronze_erp_cust_az12"
}

// ErpLocation carries the customer country from the ERP system.
type ErpLocation struct {
	CustomerKey string `gorm:"column:cid;type:varchar(50)"`
	Country     string `gorm:"column:cntry;type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ErpLocation) TableName() string {
	return "bronze_erp_loc_a101"
}

// ErpProductCategory maps a category id to its descriptive attributes.
type ErpProductCategory struct {
	CategoryID  string `gorm:"column:id;type:varchar(50)"`
	Category    string `gorm:"column:cat;type:varchar(100)"`
	Subcategory string `gorm:"column:subcat;type:varchar(100)"`
	Maintenance string `gorm:"column:maintenance;type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ErpProductCategory) TableName() string {
	return "bronze_erp_px_cat_g1v2"
}

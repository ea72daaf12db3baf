package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dwh/etl/internal/domain/shared"
)

func writeExtract(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCSVSource_CrmCustomers(t *testing.T) {
	t.Run("reads and types the customer extract", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, crmCustomerFile,
			"cst_id,cst_key,cst_firstname,cst_lastname,cst_marital_status,cst_gndr,cst_create_date\n"+
				"11000,AW00011000,Jon,Yang,M,M,2022-01-15\n")
		source := NewCSVSource(dir, ',', 0, zap.NewNop())

		rows, err := source.CrmCustomers(context.Background())

		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].CustomerID)
		assert.Equal(t, int64(11000), *rows[0].CustomerID)
		assert.Equal(t, "AW00011000", rows[0].CustomerKey)
		require.NotNil(t, rows[0].CreatedAt)
		assert.Equal(t, time.Date(2022, time.January, 15, 0, 0, 0, 0, time.UTC), *rows[0].CreatedAt)
	})

	t.Run("unparseable fields land as nulls", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, crmCustomerFile,
			"cst_id,cst_key,cst_create_date\n"+
				"abc,AW00011000,not-a-date\n")
		source := NewCSVSource(dir, ',', 0, zap.NewNop())

		rows, err := source.CrmCustomers(context.Background())

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].CustomerID)
		assert.Nil(t, rows[0].CreatedAt)
	})

	t.Run("missing required headers fail the read", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, crmCustomerFile, "cst_firstname,cst_lastname\nJon,Yang\n")
		source := NewCSVSource(dir, ',', 0, zap.NewNop())

		_, err := source.CrmCustomers(context.Background())

		assert.ErrorIs(t, err, shared.ErrMissingColumn)
	})

	t.Run("missing file fails the read", func(t *testing.T) {
		source := NewCSVSource(t.TempDir(), ',', 0, zap.NewNop())

		_, err := source.CrmCustomers(context.Background())

		assert.Error(t, err)
	})

	t.Run("oversized file is refused", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, crmCustomerFile, "cst_id,cst_key\n11000,AW00011000\n")
		source := NewCSVSource(dir, ',', 10, zap.NewNop())

		_, err := source.CrmCustomers(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "byte limit")
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		source := NewCSVSource(t.TempDir(), ',', 0, zap.NewNop())

		_, err := source.CrmCustomers(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCSVSource_CrmSales(t *testing.T) {
	t.Run("keeps raw integer dates untouched", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, crmSalesFile,
			"sls_ord_num,sls_prd_key,sls_cust_id,sls_order_dt,sls_ship_dt,sls_due_dt,sls_sales,sls_quantity,sls_price\n"+
				"SO43697,FR-R92B-58,11000,0,20240117,20240122,3578.27,1,3578.27\n")
		source := NewCSVSource(dir, ',', 0, zap.NewNop())

		rows, err := source.CrmSales(context.Background())

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(0), rows[0].OrderDateRaw)
		assert.Equal(t, int64(20240117), rows[0].ShipDateRaw)
		require.True(t, rows[0].SalesAmount.Valid)
		assert.Equal(t, "3578.27", rows[0].SalesAmount.Decimal.String())
		require.NotNil(t, rows[0].Quantity)
		assert.Equal(t, int64(1), *rows[0].Quantity)
	})

	t.Run("empty measures land as nulls", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, crmSalesFile,
			"sls_ord_num,sls_prd_key,sls_sales,sls_quantity,sls_price\n"+
				"SO43697,FR-R92B-58,,2,\n")
		source := NewCSVSource(dir, ',', 0, zap.NewNop())

		rows, err := source.CrmSales(context.Background())

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.False(t, rows[0].SalesAmount.Valid)
		assert.False(t, rows[0].UnitPrice.Valid)
	})
}

func TestCSVSource_ErpExtracts(t *testing.T) {
	t.Run("reads ERP customers with upper-case headers", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, erpCustomerFile, "CID,BDATE,GEN\nNASAW00011000,1971-10-06,Male\n")
		source := NewCSVSource(dir, ',', 0, zap.NewNop())

		rows, err := source.ErpCustomers(context.Background())

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "NASAW00011000", rows[0].CustomerKey)
		require.NotNil(t, rows[0].BirthDate)
		assert.Equal(t, "Male", rows[0].Gender)
	})

	t.Run("reads ERP locations", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, erpLocationFile, "CID,CNTRY\nAW-00011000,Australia\n")
		source := NewCSVSource(dir, ',', 0, zap.NewNop())

		rows, err := source.ErpLocations(context.Background())

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "AW-00011000", rows[0].CustomerKey)
		assert.Equal(t, "Australia", rows[0].Country)
	})

	t.Run("reads ERP product categories", func(t *testing.T) {
		dir := t.TempDir()
		writeExtract(t, dir, erpCategoryFile, "ID,CAT,SUBCAT,MAINTENANCE\nCO_RF,Components,Road Frames,Yes\n")
		source := NewCSVSource(dir, ',', 0, zap.NewNop())

		rows, err := source.ErpProductCategories(context.Background())

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "CO_RF", rows[0].CategoryID)
		assert.Equal(t, "Road Frames", rows[0].Subcategory)
	})
}

func TestCSVSource_CrmProducts(t *testing.T) {
	dir := t.TempDir()
	writeExtract(t, dir, crmProductFile,
		"prd_id,prd_key,prd_nm,prd_cost,prd_line,prd_start_dt,prd_end_dt\n"+
			"210,CO-RF-FR-R92B-58,HL Road Frame - Black,1059.31,R,2013-07-01,\n")
	source := NewCSVSource(dir, ',', 0, zap.NewNop())

	rows, err := source.CrmProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(210), rows[0].ProductID)
	assert.Equal(t, "CO-RF-FR-R92B-58", rows[0].ProductKey)
	require.True(t, rows[0].Cost.Valid)
	assert.Equal(t, "1059.31", rows[0].Cost.Decimal.String())
	require.NotNil(t, rows[0].StartDate)
	assert.Nil(t, rows[0].EndDateRaw)
}

package cleanse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwh/etl/internal/application/quality"
	"github.com/dwh/etl/internal/domain/silver"
)

func TestBuildFactSales(t *testing.T) {
	products := []silver.DimProduct{
		{ProductKey: 7, ProductNumber: "FR-R92B-58"},
	}
	customers := []silver.DimCustomer{
		{CustomerKey: 3, CustomerID: 11000},
	}

	t.Run("swaps business identifiers for surrogate keys", func(t *testing.T) {
		sales := []silver.Sale{
			{
				OrderNumber: "SO43697",
				ProductSKU:  "FR-R92B-58",
				CustomerID:  11000,
				SalesAmount: dec("3578.27"),
				Quantity:    1,
				UnitPrice:   dec("3578.27"),
			},
		}

		facts, issues := BuildFactSales(sales, products, customers)

		require.Len(t, facts, 1)
		assert.Empty(t, issues)
		assert.Equal(t, int64(7), facts[0].ProductKey)
		assert.Equal(t, int64(3), facts[0].CustomerKey)
		assert.Equal(t, "SO43697", facts[0].OrderNumber)
		assert.True(t, facts[0].SalesAmount.Equal(dec("3578.27")))
	})

	t.Run("unknown product keeps a zero key and is reported", func(t *testing.T) {
		sales := []silver.Sale{
			{OrderNumber: "SO1", ProductSKU: "UNKNOWN", CustomerID: 11000},
		}

		facts, issues := BuildFactSales(sales, products, customers)

		require.Len(t, facts, 1)
		assert.Zero(t, facts[0].ProductKey)
		assert.Equal(t, int64(3), facts[0].CustomerKey)
		require.Len(t, issues, 1)
		assert.Equal(t, quality.ReasonOrphanReference, issues[0].Reason)
		assert.Equal(t, "sls_prd_key", issues[0].Field)
	})

	t.Run("unknown customer keeps a zero key and is reported", func(t *testing.T) {
		sales := []silver.Sale{
			{OrderNumber: "SO1", ProductSKU: "FR-R92B-58", CustomerID: 99999},
		}

		facts, issues := BuildFactSales(sales, products, customers)

		require.Len(t, facts, 1)
		assert.Zero(t, facts[0].CustomerKey)
		require.Len(t, issues, 1)
		assert.Equal(t, "sls_cust_id", issues[0].Field)
	})

	t.Run("orphaned rows are reported but never dropped", func(t *testing.T) {
		sales := []silver.Sale{
			{OrderNumber: "SO1", ProductSKU: "UNKNOWN", CustomerID: 99999},
		}

		facts, issues := BuildFactSales(sales, products, customers)

		assert.Len(t, facts, 1)
		assert.Len(t, issues, 2)
	})
}

package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwh/etl/internal/domain/silver"
)

func TestGormSilverSink_ReplaceCustomers(t *testing.T) {
	t.Run("empty batch clears the table inside a transaction", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		sink := NewGormSilverSink(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "silver_crm_cust_info"`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		err := sink.ReplaceCustomers(context.Background(), nil)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete failure rolls the transaction back", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		sink := NewGormSilverSink(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "silver_crm_cust_info"`).
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		err := sink.ReplaceCustomers(context.Background(), []silver.Customer{{CustomerID: 1}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deadlock detected")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSilverSink_ReplaceFactSales(t *testing.T) {
	t.Run("targets the fact table", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		sink := NewGormSilverSink(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "gold_fact_sales"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := sink.ReplaceFactSales(context.Background(), nil)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSilverSink_ReplaceDimProducts(t *testing.T) {
	t.Run("targets the product dimension", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		sink := NewGormSilverSink(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "gold_dim_products"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := sink.ReplaceDimProducts(context.Background(), nil)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

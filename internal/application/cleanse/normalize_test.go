package cleanse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwh/etl/internal/domain/bronze"
)

func TestNormalizeGender(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single letter F", "F", "Female"},
		{"single letter M", "M", "Male"},
		{"full word lowercase", "female", "Female"},
		{"full word mixed case", "Male", "Male"},
		{"surrounding whitespace", "  F  ", "Female"},
		{"empty", "", "n/a"},
		{"unknown code", "X", "n/a"},
		{"already canonical", "Female", "Female"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeGender(tc.in))
		})
	}
}

func TestNormalizeMaritalStatus(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single letter S", "S", "Single"},
		{"single letter M", "M", "Married"},
		{"full word", "single", "Single"},
		{"whitespace", " M ", "Married"},
		{"empty", "", "n/a"},
		{"unknown", "divorced", "n/a"},
		{"already canonical", "Married", "Married"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeMaritalStatus(tc.in))
		})
	}
}

func TestNormalizeGender_Idempotent(t *testing.T) {
	for _, raw := range []string{"F", "M", "x", ""} {
		once := NormalizeGender(raw)
		assert.Equal(t, once, NormalizeGender(once), "raw %q", raw)
	}
}

func TestNormalizeProductLine(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"M", "Mountain"},
		{"R", "Road"},
		{"S", "Other Sales"},
		{"T", "Touring"},
		{" t ", "Touring"},
		{"Mountain", "Mountain"},
		{"", "n/a"},
		{"Z", "n/a"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeProductLine(tc.in), "raw %q", tc.in)
	}
}

func TestNormalizeCountry(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"DE", "Germany"},
		{"US", "United States"},
		{"USA", "United States"},
		{"usa", "United States"},
		{"", "n/a"},
		{"   ", "n/a"},
		{"Australia", "Australia"},
		{"  France  ", "France"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeCountry(tc.in), "raw %q", tc.in)
	}
}

func TestNormalizeCustomers(t *testing.T) {
	t.Run("projects and cleans deduplicated rows", func(t *testing.T) {
		created := date(2023, time.April, 2)
		rows := []bronze.CrmCustomer{
			{
				CustomerID:    int64Ptr(11000),
				CustomerKey:   " AW00011000 ",
				FirstName:     "  Jon ",
				LastName:      "Yang  ",
				MaritalStatus: "M",
				Gender:        "m",
				CreatedAt:     timePtr(created),
			},
		}

		out := NormalizeCustomers(rows)

		require.Len(t, out, 1)
		assert.Equal(t, int64(11000), out[0].CustomerID)
		assert.Equal(t, "AW00011000", out[0].CustomerKey)
		assert.Equal(t, "Jon", out[0].FirstName)
		assert.Equal(t, "Yang", out[0].LastName)
		assert.Equal(t, "Married", out[0].MaritalStatus)
		assert.Equal(t, "Male", out[0].Gender)
		assert.Equal(t, created, out[0].CreatedAt)
	})

	t.Run("unknown categoricals map to n/a", func(t *testing.T) {
		rows := []bronze.CrmCustomer{
			{CustomerID: int64Ptr(1), MaritalStatus: "", Gender: "unknown"},
		}

		out := NormalizeCustomers(rows)

		require.Len(t, out, 1)
		assert.Equal(t, "n/a", out[0].MaritalStatus)
		assert.Equal(t, "n/a", out[0].Gender)
	})
}

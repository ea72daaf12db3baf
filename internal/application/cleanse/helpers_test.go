package cleanse

import (
	"time"

	"github.com/shopspring/decimal"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func nullDec(v string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(v), Valid: true}
}

func noDec() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

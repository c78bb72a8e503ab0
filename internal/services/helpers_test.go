package services

import (
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/testutil"
)

func fixedClock() time.Time { return testutil.FixedNow }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := dec(v)
	return &d
}

package discount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pos/internal/catalog"
)

func float64Ptr(v float64) *float64 { return &v }

var now = time.Date(2026, 1, 10, 14, 30, 0, 0, time.UTC)

func TestComputeItemDiscountPercentageWithMinQty(t *testing.T) {
	item := catalog.Item{Discounts: []catalog.Discount{
		{DiscountType: "percentage", Amount: "10", MinPurchaseQty: float64Ptr(2)},
	}}

	require.Equal(t, 30.0, ComputeItemDiscount(item, 3, 100, now))
	// Below the quantity threshold the rule is inert.
	require.Equal(t, 0.0, ComputeItemDiscount(item, 1, 100, now))
}

func TestComputeItemDiscountStacksAdditively(t *testing.T) {
	item := catalog.Item{Discounts: []catalog.Discount{
		{DiscountType: "amount", Amount: "5"},
		{DiscountType: "percentage", Amount: "10"},
	}}

	// (5 + 100*10%) per unit, two units.
	require.Equal(t, 30.0, ComputeItemDiscount(item, 2, 100, now))
}

func TestComputeItemDiscountUnparseableAmount(t *testing.T) {
	item := catalog.Item{Discounts: []catalog.Discount{
		{DiscountType: "amount", Amount: "free!!"},
		{DiscountType: "amount", Amount: "5"},
	}}

	require.Equal(t, 5.0, ComputeItemDiscount(item, 1, 100, now))
}

func TestComputeItemDiscountZeroQuantity(t *testing.T) {
	item := catalog.Item{Discounts: []catalog.Discount{
		{DiscountType: "amount", Amount: "5"},
	}}

	require.Equal(t, 0.0, ComputeItemDiscount(item, 0, 100, now))
}

func TestEligibleDateWindow(t *testing.T) {
	rule := catalog.Discount{
		DiscountType: "amount",
		Amount:       "5",
		StartDate:    "2026-01-01",
		EndDate:      "2026-01-15",
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"inside window", time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC), true},
		{"before start", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), false},
		{"end date evening still applies", time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC), true},
		{"day after end", time.Date(2026, 1, 16, 0, 0, 1, 0, time.UTC), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Eligible(rule, 1, 100, tc.at))
		})
	}
}

func TestEligibleRFC3339Dates(t *testing.T) {
	rule := catalog.Discount{
		Amount:    "5",
		StartDate: "2026-01-01T00:00:00Z",
		EndDate:   "2026-01-15T00:00:00Z",
	}

	require.True(t, Eligible(rule, 1, 100, now))
}

func TestEligibleMinSpend(t *testing.T) {
	rule := catalog.Discount{Amount: "5", MinSpend: float64Ptr(500)}

	require.False(t, Eligible(rule, 4, 100, now))
	require.True(t, Eligible(rule, 5, 100, now))
}

func TestEligibleMalformedDatesIgnored(t *testing.T) {
	rule := catalog.Discount{Amount: "5", StartDate: "soon", EndDate: "later"}
	require.True(t, Eligible(rule, 1, 100, now))
}

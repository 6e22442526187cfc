package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeVATReportedNotCharged(t *testing.T) {
	lines := []Line{{Quantity: 5, UnitPrice: 100}}

	got := Compute(lines, 0, 1200, true)
	require.Equal(t, 500.0, got.Subtotal)
	require.Equal(t, 60.0, got.Tax)
	// Tax is informational; the payable total stays the discounted amount.
	require.Equal(t, 500.0, got.TotalPayable)
}

func TestComputeVATDisabled(t *testing.T) {
	got := Compute([]Line{{Quantity: 5, UnitPrice: 100}}, 0, 1200, false)
	require.Equal(t, 0.0, got.Tax)
}

func TestComputeVoucherFloorsAtZero(t *testing.T) {
	got := Compute([]Line{{Quantity: 1, UnitPrice: 100}}, 150, 0, false)
	require.Equal(t, 0.0, got.TotalPayable)
	require.Equal(t, 150.0, got.VoucherDiscount)
}

func TestComputeItemDiscountBeforeVoucher(t *testing.T) {
	lines := []Line{
		{Quantity: 2, UnitPrice: 100, ItemDiscount: 20},
		{Quantity: 1, UnitPrice: 50},
	}

	got := Compute(lines, 30, 1200, true)
	require.Equal(t, 250.0, got.Subtotal)
	require.Equal(t, 20.0, got.ItemDiscount)
	// VAT applies to the item-discounted amount, before the voucher.
	require.InDelta(t, 27.6, got.Tax, 1e-9)
	require.Equal(t, 200.0, got.TotalPayable)
}

func TestComputeExcessItemDiscountClamps(t *testing.T) {
	got := Compute([]Line{{Quantity: 1, UnitPrice: 100, ItemDiscount: 400}}, 0, 1200, true)
	require.Equal(t, 0.0, got.TotalPayable)
	require.Equal(t, 0.0, got.Tax)
}

func TestComputeSkipsNonPositiveQuantities(t *testing.T) {
	lines := []Line{
		{Quantity: 0, UnitPrice: 100, ItemDiscount: 10},
		{Quantity: 2, UnitPrice: 50},
	}

	got := Compute(lines, 0, 0, false)
	require.Equal(t, 100.0, got.Subtotal)
	require.Equal(t, 0.0, got.ItemDiscount)
}

func TestComputeSanitizesPoisonedInput(t *testing.T) {
	got := Compute([]Line{{Quantity: 1, UnitPrice: math.NaN()}}, math.Inf(1), 1200, true)
	require.Equal(t, 0.0, got.Subtotal)
	require.Equal(t, 0.0, got.VoucherDiscount)
	require.Equal(t, 0.0, got.TotalPayable)
}

func TestCheckCashShortfall(t *testing.T) {
	err := CheckCash(150, 100, "₱")
	require.Error(t, err)
	require.EqualError(t, err, "cash received is short by ₱50.00")
}

func TestCheckCashExactAndOver(t *testing.T) {
	require.NoError(t, CheckCash(150, 150, "₱"))
	require.NoError(t, CheckCash(150, 200, "₱"))
}

func TestCheckCashFreeOrder(t *testing.T) {
	require.NoError(t, CheckCash(0, 0, "₱"))
}

func TestChange(t *testing.T) {
	require.Equal(t, 50.0, Change(150, 200))
	require.Equal(t, 0.0, Change(150, 100))
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "₱1234.50", FormatAmount("₱", 1234.5))
	require.Equal(t, "₱0.00", FormatAmount("₱", math.NaN()))
}

// Package pricing derives order-level totals from validated lines.
package pricing

import (
	"fmt"

	"github.com/noah-isme/backend-pos/internal/common"
)

// Line is a priced order line: the tier-resolved unit price and the total
// item discount already computed for the full line.
type Line struct {
	Quantity     float64
	UnitPrice    float64
	ItemDiscount float64
}

// Summary aggregates computed order totals. Tax is informational: it is
// reported and forwarded as a flag on submission but never folded into
// TotalPayable here.
type Summary struct {
	Subtotal        float64 `json:"subtotal"`
	ItemDiscount    float64 `json:"itemDiscount"`
	VoucherDiscount float64 `json:"voucherDiscount"`
	Tax             float64 `json:"tax"`
	TotalPayable    float64 `json:"totalPayable"`
}

// Compute calculates order totals for the given lines. VAT applies to the
// discount-adjusted amount; both intermediate and final totals clamp at zero.
func Compute(lines []Line, voucherDiscount float64, vatBps int, vatEnabled bool) Summary {
	var subtotal, itemDiscount float64
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		subtotal += common.Sanitize(l.UnitPrice) * l.Quantity
		itemDiscount += common.Sanitize(l.ItemDiscount)
	}
	preVoucher := subtotal - itemDiscount
	if preVoucher < 0 {
		preVoucher = 0
	}
	var tax float64
	if vatEnabled && vatBps > 0 {
		tax = preVoucher * float64(vatBps) / 10000
	}
	voucher := common.Sanitize(voucherDiscount)
	if voucher < 0 {
		voucher = 0
	}
	total := preVoucher - voucher
	if total < 0 {
		total = 0
	}
	return Summary{
		Subtotal:        common.Sanitize(subtotal),
		ItemDiscount:    common.Sanitize(itemDiscount),
		VoucherDiscount: voucher,
		Tax:             common.Sanitize(tax),
		TotalPayable:    common.Sanitize(total),
	}
}

// ShortfallError reports insufficient cash at submission time.
type ShortfallError struct {
	Missing float64
	Symbol  string
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("cash received is short by %s", FormatAmount(e.Symbol, e.Missing))
}

// CheckCash verifies the received cash covers the payable total. Free orders
// never fail this check.
func CheckCash(totalPayable, cashReceived float64, symbol string) error {
	if totalPayable <= 0 {
		return nil
	}
	if cashReceived < totalPayable {
		return &ShortfallError{Missing: totalPayable - cashReceived, Symbol: symbol}
	}
	return nil
}

// Change returns the cash change due, never negative.
func Change(totalPayable, cashReceived float64) float64 {
	change := cashReceived - totalPayable
	if change < 0 {
		return 0
	}
	return change
}

// FormatAmount renders a monetary value with the configured currency symbol.
func FormatAmount(symbol string, v float64) string {
	return fmt.Sprintf("%s%.2f", symbol, common.Sanitize(v))
}

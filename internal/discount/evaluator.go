// Package discount evaluates time and threshold gated item discounts.
package discount

import (
	"strings"
	"time"

	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/common"
)

// Discount types accepted on catalog rules.
const (
	TypeAmount     = "amount"
	TypePercentage = "percentage"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// ComputeItemDiscount returns the total discount amount for a full line: the
// sum of every eligible rule's per-unit discount multiplied by the quantity.
// Rules stack additively; an unparseable amount contributes nothing.
func ComputeItemDiscount(item catalog.Item, quantity, unitPrice float64, now time.Time) float64 {
	if quantity <= 0 {
		return 0
	}
	var total float64
	for _, rule := range item.Discounts {
		if !Eligible(rule, quantity, unitPrice, now) {
			continue
		}
		total += perUnit(rule, unitPrice) * quantity
	}
	return common.Sanitize(total)
}

// Eligible reports whether a rule applies to a line of the given quantity and
// unit price at the provided instant. The end date is inclusive through the
// last millisecond of that day.
func Eligible(rule catalog.Discount, quantity, unitPrice float64, now time.Time) bool {
	if start, ok := parseDate(rule.StartDate); ok && now.Before(start) {
		return false
	}
	if end, ok := parseDate(rule.EndDate); ok {
		cutoff := endOfDay(end)
		if now.After(cutoff) {
			return false
		}
	}
	if rule.MinPurchaseQty != nil && quantity < *rule.MinPurchaseQty {
		return false
	}
	if rule.MinSpend != nil && unitPrice*quantity < *rule.MinSpend {
		return false
	}
	return true
}

func perUnit(rule catalog.Discount, unitPrice float64) float64 {
	amount := common.ParseAmount(rule.Amount)
	if amount <= 0 {
		return 0
	}
	if strings.EqualFold(strings.TrimSpace(rule.DiscountType), TypePercentage) {
		return common.Sanitize(unitPrice * (amount / 100))
	}
	return amount
}

func parseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

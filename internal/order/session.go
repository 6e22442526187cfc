// Package order owns the ephemeral per-session order state: selected lines,
// price tier overrides, voucher and draft references.
package order

import (
	"time"

	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/orderline"
	"github.com/noah-isme/backend-pos/internal/voucher"
)

// Line is one selected item in a session. Item is a per-selection snapshot;
// mutations here never touch the shared catalog cache.
type Line struct {
	Item      catalog.Item          `json:"item"`
	Quantity  float64               `json:"quantity"`
	UomID     int64                 `json:"selectedUomId"`
	PriceTier catalog.PriceTier     `json:"selectedPriceType,omitempty"`
	Errors    *orderline.LineErrors `json:"errors,omitempty"`
}

// Session is the full order-in-progress state. Lines are keyed by item id;
// concurrent edits overwrite in dispatch order (last write wins).
type Session struct {
	ID         string            `json:"id"`
	CustomerID *int64            `json:"customerId,omitempty"`
	Lines      map[int64]*Line   `json:"lines"`
	GlobalTier catalog.PriceTier `json:"globalPriceType"`
	Voucher    *voucher.Applied  `json:"voucher,omitempty"`
	VATEnabled bool              `json:"vatEnabled"`
	DraftID    *int64            `json:"draftId,omitempty"`
	PONumber   string            `json:"poNumber,omitempty"`
	Processing bool              `json:"processing"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// TierFor returns the effective price tier for a line: the per-line override
// when set, otherwise the session-wide tier.
func (s *Session) TierFor(line *Line) catalog.PriceTier {
	if line != nil && line.PriceTier != "" {
		return line.PriceTier
	}
	if s.GlobalTier != "" {
		return s.GlobalTier
	}
	return catalog.TierUnit
}

// VoucherDiscount returns the applied voucher amount, zero when none.
func (s *Session) VoucherDiscount() float64 {
	if s.Voucher == nil {
		return 0
	}
	return s.Voucher.DiscountAmount
}

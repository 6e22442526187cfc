package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/discount"
	"github.com/noah-isme/backend-pos/internal/obs"
	"github.com/noah-isme/backend-pos/internal/orderline"
	"github.com/noah-isme/backend-pos/internal/pricing"
	"github.com/noah-isme/backend-pos/internal/uom"
	"github.com/noah-isme/backend-pos/internal/voucher"
)

// ErrLineNotFound indicates the item is not selected in the session.
var ErrLineNotFound = errors.New("order: line not found")

// ItemSource provides catalog items for selection snapshots.
type ItemSource interface {
	GetItem(ctx context.Context, id int64) (catalog.Item, error)
}

// Service owns session lifecycle and per-line state transitions.
type Service struct {
	Store      *Store
	Catalog    ItemSource
	Vouchers   voucher.Client
	VATRateBPS int
	Now        func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create starts a fresh session.
func (s *Service) Create(ctx context.Context, customerID *int64, globalTier string, vatEnabled bool) (*Session, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("order: service not configured")
	}
	now := s.now()
	sess := &Session{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Lines:      make(map[int64]*Line),
		GlobalTier: catalog.ParsePriceTier(globalTier),
		VATEnabled: vatEnabled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("order: service not configured")
	}
	return s.Store.Get(ctx, id)
}

// LinePatch carries optional per-line updates.
type LinePatch struct {
	Quantity  *float64
	UomID     *int64
	PriceTier *string
}

// SelectItem snapshots a catalog item into the session with default quantity
// and unit, then validates the new line.
func (s *Service) SelectItem(ctx context.Context, sessionID string, itemID int64, patch LinePatch) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item, err := s.Catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	line := &Line{Item: item.Clone(), Quantity: 1}
	if uomID, ok := uom.DefaultUnitID(line.Item); ok {
		line.UomID = uomID
	}
	applyPatch(line, patch)
	s.revalidate(line)
	sess.Lines[itemID] = line
	return s.save(ctx, sess)
}

// UpdateLine applies quantity/UOM/tier changes to a selected line. A UOM
// change that shrinks available stock below the stored quantity clamps the
// quantity down before re-validating.
func (s *Service) UpdateLine(ctx context.Context, sessionID string, itemID int64, patch LinePatch) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	line, ok := sess.Lines[itemID]
	if !ok {
		return nil, ErrLineNotFound
	}
	applyPatch(line, patch)
	s.revalidate(line)
	return s.save(ctx, sess)
}

// RemoveLine deselects an item.
func (s *Service) RemoveLine(ctx context.Context, sessionID string, itemID int64) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := sess.Lines[itemID]; !ok {
		return nil, ErrLineNotFound
	}
	delete(sess.Lines, itemID)
	return s.save(ctx, sess)
}

// ApplyVoucher resolves the code against the current pre-voucher total and
// attaches the result, replacing any prior voucher.
func (s *Service) ApplyVoucher(ctx context.Context, sessionID, code string) (*Session, error) {
	if s.Vouchers == nil {
		return nil, errors.New("order: voucher client not configured")
	}
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	preVoucher := s.computeTotals(sess, 0).TotalPayable
	applied, err := s.Vouchers.Apply(ctx, code, preVoucher)
	if err != nil {
		if obs.VouchersAppliedTotal != nil {
			obs.VouchersAppliedTotal.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}
	if obs.VouchersAppliedTotal != nil {
		obs.VouchersAppliedTotal.WithLabelValues("applied").Inc()
	}
	sess.Voucher = &applied
	return s.save(ctx, sess)
}

// RemoveVoucher clears the applied voucher.
func (s *Service) RemoveVoucher(ctx context.Context, sessionID string) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Voucher = nil
	return s.save(ctx, sess)
}

// Totals derives order-level totals from the current session state.
func (s *Service) Totals(sess *Session) pricing.Summary {
	return s.computeTotals(sess, sess.VoucherDiscount())
}

// ValidateAll re-validates every line, stores the per-line results and
// returns the aggregate. A non-empty aggregate blocks submission.
func (s *Service) ValidateAll(sess *Session) map[int64]*orderline.LineErrors {
	lines := make(map[int64]orderline.Line, len(sess.Lines))
	for id, line := range sess.Lines {
		lines[id] = orderline.Line{Item: line.Item, Quantity: line.Quantity, UomID: line.UomID}
	}
	result := orderline.ValidateAll(lines)
	for id, line := range sess.Lines {
		line.Errors = result[id]
	}
	if obs.LineValidationFailsTotal != nil {
		for _, errs := range result {
			for _, field := range errs.Fields() {
				obs.LineValidationFailsTotal.WithLabelValues(field).Inc()
			}
		}
	}
	return result
}

func (s *Service) computeTotals(sess *Session, voucherDiscount float64) pricing.Summary {
	now := s.now()
	lines := make([]pricing.Line, 0, len(sess.Lines))
	for _, line := range sess.Lines {
		prices := uom.ResolvePrice(line.Item, line.UomID)
		unitPrice := prices.ForTier(sess.TierFor(line))
		lines = append(lines, pricing.Line{
			Quantity:     line.Quantity,
			UnitPrice:    unitPrice,
			ItemDiscount: discount.ComputeItemDiscount(line.Item, line.Quantity, unitPrice, now),
		})
	}
	return pricing.Compute(lines, voucherDiscount, s.VATRateBPS, sess.VATEnabled)
}

func (s *Service) revalidate(line *Line) {
	line.Errors = orderline.ValidateLine(line.Item, line.Quantity, line.UomID)
}

func (s *Service) save(ctx context.Context, sess *Session) (*Session, error) {
	sess.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func applyPatch(line *Line, patch LinePatch) {
	if patch.PriceTier != nil {
		line.PriceTier = catalog.ParsePriceTier(*patch.PriceTier)
	}
	if patch.UomID != nil && *patch.UomID != line.UomID {
		line.UomID = *patch.UomID
		available := uom.ResolveAvailableQuantity(line.Item, line.UomID)
		if available < line.Quantity {
			line.Quantity = orderline.ClampQuantity(available)
		}
	}
	if patch.Quantity != nil {
		line.Quantity = *patch.Quantity
	}
}

// Describe renders a human label for a line's unit, used in API payloads.
func Describe(line *Line) string {
	if line == nil {
		return uom.DefaultUnitLabel
	}
	return fmt.Sprintf("%s (%s)", line.Item.Description, uom.Label(line.Item, line.UomID))
}

package checkout

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/backend-pos/internal/common"
	"github.com/noah-isme/backend-pos/internal/obs"
	"github.com/noah-isme/backend-pos/internal/order"
	"github.com/noah-isme/backend-pos/internal/orderline"
	"github.com/noah-isme/backend-pos/internal/pricing"
)

// ErrAlreadyProcessing rejects a duplicate submit while one is in flight.
// The flag is a UI-level guard, not a distributed lock.
var ErrAlreadyProcessing = errors.New("checkout: submission already in progress")

// ErrEmptyOrder rejects submission of a session with no selected lines.
var ErrEmptyOrder = errors.New("checkout: no items selected")

// ValidationBlockedError aggregates per-line failures that block submission.
type ValidationBlockedError struct {
	Lines map[int64]*orderline.LineErrors
}

func (e *ValidationBlockedError) Error() string {
	return "checkout: order lines failed validation"
}

// SubmitInput is the submission request from the till UI. CashReceived stays
// a raw string; coercion happens here so a garbled input reads as 0, not NaN.
type SubmitInput struct {
	PaymentMethod    PaymentMethod
	CashReceived     string
	PONumber         *string
	DraftID          *int64
	OverrideEmail    string
	OverridePassword string
}

// SubmitOutput reports the accepted order and the cash change due.
type SubmitOutput struct {
	OrderID      int64   `json:"orderId"`
	Status       string  `json:"status"`
	TotalPayable float64 `json:"totalPayable"`
	PaidAmount   float64 `json:"paidAmount"`
	Change       float64 `json:"change"`
	FreeOrder    bool    `json:"freeOrder"`
}

// Service coordinates submission of a session as an order or draft.
type Service struct {
	Sessions       *order.Service
	Client         Client
	CurrencySymbol string
	Logger         zerolog.Logger
}

// Submit validates the session, assembles the payload and submits it. On any
// failure the processing flag rolls back so the user can correct and retry.
func (s *Service) Submit(ctx context.Context, sessionID string, in SubmitInput) (SubmitOutput, error) {
	ctx, span := otel.Tracer("checkout.Service").Start(ctx, "CheckoutService.Submit")
	defer span.End()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return SubmitOutput{}, err
	}
	if sess.Processing {
		return SubmitOutput{}, ErrAlreadyProcessing
	}
	if len(sess.Lines) == 0 {
		return SubmitOutput{}, ErrEmptyOrder
	}
	if failures := s.Sessions.ValidateAll(sess); len(failures) > 0 {
		return SubmitOutput{}, &ValidationBlockedError{Lines: failures}
	}

	totals := s.Sessions.Totals(sess)
	kind := ClassifyMethod(in.PaymentMethod.Tag)
	span.SetAttributes(
		attribute.String("payment.kind", string(kind)),
		attribute.Float64("order.total_payable", totals.TotalPayable),
	)

	var paid, change float64
	freeOrder := totals.TotalPayable <= 0
	switch {
	case freeOrder:
		// Fully voucher-covered orders confirm with zero paid, no cash input.
		paid = 0
	case kind == MethodCredit:
		paid = totals.TotalPayable
	default:
		cash := common.ParseAmount(in.CashReceived)
		if err := pricing.CheckCash(totals.TotalPayable, cash, s.CurrencySymbol); err != nil {
			return SubmitOutput{}, err
		}
		paid = cash
		change = pricing.Change(totals.TotalPayable, cash)
	}

	if err := s.setProcessing(ctx, sess, true); err != nil {
		return SubmitOutput{}, err
	}

	payload := s.assemble(sess, in, totals.TotalPayable, paid, false)
	result, err := s.Client.Submit(ctx, payload)
	if err != nil {
		span.RecordError(err)
		if rollbackErr := s.setProcessing(ctx, sess, false); rollbackErr != nil {
			s.Logger.Error().Err(rollbackErr).Str("session_id", sess.ID).Msg("rollback processing flag")
		}
		s.recordSubmit(kind, err, in)
		return SubmitOutput{}, err
	}
	s.recordSubmit(kind, nil, in)

	if err := s.Sessions.Store.Delete(ctx, sess.ID); err != nil {
		s.Logger.Warn().Err(err).Str("session_id", sess.ID).Msg("clear submitted session")
	}
	return SubmitOutput{
		OrderID:      result.OrderID,
		Status:       result.Status,
		TotalPayable: totals.TotalPayable,
		PaidAmount:   paid,
		Change:       change,
		FreeOrder:    freeOrder,
	}, nil
}

// SaveDraft submits the session as an incomplete order. The session stays
// alive and remembers the draft id for later resumption.
func (s *Service) SaveDraft(ctx context.Context, sessionID string, in SubmitInput) (SubmitResult, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return SubmitResult{}, err
	}
	if len(sess.Lines) == 0 {
		return SubmitResult{}, ErrEmptyOrder
	}
	totals := s.Sessions.Totals(sess)
	payload := s.assemble(sess, in, totals.TotalPayable, 0, true)
	result, err := s.Client.Submit(ctx, payload)
	if err != nil {
		return SubmitResult{}, err
	}
	if result.DraftID != 0 {
		draftID := result.DraftID
		sess.DraftID = &draftID
		if err := s.Sessions.Store.Save(ctx, sess); err != nil {
			s.Logger.Warn().Err(err).Str("session_id", sess.ID).Msg("record draft id")
		}
	}
	if obs.DraftsSavedTotal != nil {
		obs.DraftsSavedTotal.Inc()
	}
	return result, nil
}

func (s *Service) assemble(sess *order.Session, in SubmitInput, totalPayable, paid float64, isDraft bool) SubmitOrderRequest {
	items := make([]OrderedItem, 0, len(sess.Lines))
	for id, line := range sess.Lines {
		items = append(items, OrderedItem{
			ID:            id,
			SelectedUomID: line.UomID,
			Quantity:      line.Quantity,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	payload := SubmitOrderRequest{
		CustomerID:       sess.CustomerID,
		PaymentMethod:    in.PaymentMethod,
		OrderedItems:     items,
		TotalPayable:     totalPayable,
		PaidAmount:       paid,
		WithTax:          sess.VATEnabled,
		IsDraft:          isDraft,
		PONumber:         in.PONumber,
		OverrideEmail:    in.OverrideEmail,
		OverridePassword: in.OverridePassword,
	}
	if in.DraftID != nil {
		payload.DraftID = in.DraftID
	} else if sess.DraftID != nil {
		payload.DraftID = sess.DraftID
	}
	if sess.Voucher != nil {
		voucherID := sess.Voucher.ID
		payload.UsedVoucher = &voucherID
		payload.VouchersUsed = &voucherID
	}
	return payload
}

func (s *Service) setProcessing(ctx context.Context, sess *order.Session, processing bool) error {
	sess.Processing = processing
	return s.Sessions.Store.Save(ctx, sess)
}

func (s *Service) recordSubmit(kind MethodKind, err error, in SubmitInput) {
	result := "success"
	var creditErr *CreditLimitError
	switch {
	case err == nil:
	case errors.As(err, &creditErr):
		result = "credit_limit"
	default:
		result = "error"
	}
	if obs.OrdersSubmittedTotal != nil {
		obs.OrdersSubmittedTotal.WithLabelValues(string(kind), result).Inc()
	}
	if obs.CreditOverridesTotal != nil && in.OverrideEmail != "" {
		overrideResult := "success"
		if err != nil {
			overrideResult = "error"
		}
		obs.CreditOverridesTotal.WithLabelValues(overrideResult).Inc()
	}
}

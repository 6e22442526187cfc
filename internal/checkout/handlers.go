package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-pos/internal/common"
	"github.com/noah-isme/backend-pos/internal/order"
	"github.com/noah-isme/backend-pos/internal/pricing"
)

// Handler wires checkout operations to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type submitPayload struct {
	PaymentMethod struct {
		ID  int64  `json:"id" validate:"required,gt=0"`
		Tag string `json:"tag" validate:"required"`
	} `json:"payment_method" validate:"required"`
	CashReceived     string  `json:"cash_received"`
	PONumber         *string `json:"po_number"`
	DraftID          *int64  `json:"draft_id"`
	OverrideEmail    string  `json:"override_email"`
	OverridePassword string  `json:"override_password"`
}

func (p submitPayload) toInput() SubmitInput {
	return SubmitInput{
		PaymentMethod:    PaymentMethod{ID: p.PaymentMethod.ID, Tag: p.PaymentMethod.Tag},
		CashReceived:     p.CashReceived,
		PONumber:         p.PONumber,
		DraftID:          p.DraftID,
		OverrideEmail:    p.OverrideEmail,
		OverridePassword: p.OverridePassword,
	}
}

// Submit finalizes the session as an order.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid payload", err.Error())
			return
		}
	}
	out, err := h.Svc.Submit(r.Context(), chi.URLParam(r, "id"), payload.toInput())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Draft saves the session as an incomplete order.
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	var payload submitPayload
	// Drafts carry no tender; the body is optional.
	_ = json.NewDecoder(r.Body).Decode(&payload)
	result, err := h.Svc.SaveDraft(r.Context(), chi.URLParam(r, "id"), payload.toInput())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": result})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *ValidationBlockedError
		shortfallErr  *pricing.ShortfallError
		creditErr     *CreditLimitError
		upstreamErr   *UpstreamValidationError
	)
	switch {
	case errors.Is(err, order.ErrSessionNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
	case errors.Is(err, ErrAlreadyProcessing):
		common.JSONError(w, http.StatusConflict, "PROCESSING", "a submission is already in progress", nil)
	case errors.Is(err, ErrEmptyOrder):
		common.JSONError(w, http.StatusUnprocessableEntity, "EMPTY_ORDER", "no items selected", nil)
	case errors.As(err, &validationErr):
		common.JSONError(w, http.StatusUnprocessableEntity, "LINE_VALIDATION", "order lines failed validation", validationErr.Lines)
	case errors.As(err, &shortfallErr):
		common.JSONError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_CASH", shortfallErr.Error(), nil)
	case errors.As(err, &creditErr):
		common.JSONError(w, http.StatusPaymentRequired, "CREDIT_LIMIT", creditErr.Error(), map[string]any{
			"recovery": "resubmit with override_email and override_password",
		})
	case errors.As(err, &upstreamErr):
		common.JSONError(w, http.StatusUnprocessableEntity, "UPSTREAM_VALIDATION", upstreamErr.Error(), upstreamErr.Fields)
	default:
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
			return
		}
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM", "order submission failed", nil)
	}
}

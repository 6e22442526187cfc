package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/common"
	"github.com/noah-isme/backend-pos/internal/voucher"
)

// Handler wires session operations to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type createPayload struct {
	CustomerID *int64 `json:"customer_id"`
	PriceType  string `json:"price_type"`
	WithTax    bool   `json:"with_tax"`
}

type selectPayload struct {
	ItemID    int64    `json:"item_id" validate:"required,gt=0"`
	Quantity  *float64 `json:"quantity" validate:"omitempty,gt=0"`
	UomID     *int64   `json:"uom_id" validate:"omitempty,gt=0"`
	PriceType *string  `json:"price_type"`
}

type patchPayload struct {
	Quantity  *float64 `json:"quantity" validate:"omitempty,gt=0"`
	UomID     *int64   `json:"uom_id" validate:"omitempty,gt=0"`
	PriceType *string  `json:"price_type"`
}

type voucherPayload struct {
	Code string `json:"code" validate:"required"`
}

// Create starts a new order session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	_ = json.NewDecoder(r.Body).Decode(&payload)
	sess, err := h.Svc.Create(r.Context(), payload.CustomerID, payload.PriceType, payload.WithTax)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to create session", nil)
		return
	}
	h.render(w, http.StatusCreated, sess)
}

// Get returns the session, per-line errors and derived totals.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, http.StatusOK, sess)
}

// AddItem selects an item into the session.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var payload selectPayload
	if !h.decode(w, r, &payload) {
		return
	}
	sess, err := h.Svc.SelectItem(r.Context(), chi.URLParam(r, "id"), payload.ItemID, LinePatch{
		Quantity:  payload.Quantity,
		UomID:     payload.UomID,
		PriceTier: payload.PriceType,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, http.StatusOK, sess)
}

// UpdateItem changes quantity, UOM or price tier on a selected line.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	var payload patchPayload
	if !h.decode(w, r, &payload) {
		return
	}
	sess, err := h.Svc.UpdateLine(r.Context(), chi.URLParam(r, "id"), itemID, LinePatch{
		Quantity:  payload.Quantity,
		UomID:     payload.UomID,
		PriceTier: payload.PriceType,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, http.StatusOK, sess)
}

// RemoveItem deselects an item.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	sess, err := h.Svc.RemoveLine(r.Context(), chi.URLParam(r, "id"), itemID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, http.StatusOK, sess)
}

// ApplyVoucher resolves and attaches a voucher code.
func (h *Handler) ApplyVoucher(w http.ResponseWriter, r *http.Request) {
	var payload voucherPayload
	if !h.decode(w, r, &payload) {
		return
	}
	sess, err := h.Svc.ApplyVoucher(r.Context(), chi.URLParam(r, "id"), payload.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, http.StatusOK, sess)
}

// RemoveVoucher clears the applied voucher.
func (h *Handler) RemoveVoucher(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.RemoveVoucher(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, http.StatusOK, sess)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(dst); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid payload", err.Error())
			return false
		}
	}
	return true
}

func (h *Handler) render(w http.ResponseWriter, status int, sess *Session) {
	totals := h.Svc.Totals(sess)
	common.JSON(w, status, map[string]any{
		"data": map[string]any{
			"session": sess,
			"totals":  totals,
		},
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
	case errors.Is(err, ErrLineNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "item not selected", nil)
	case errors.Is(err, catalog.ErrItemNotFound):
		common.JSONError(w, http.StatusUnprocessableEntity, "UNKNOWN_ITEM", "item not found in catalog", nil)
	case errors.Is(err, voucher.ErrRejected):
		common.JSONError(w, http.StatusUnprocessableEntity, "VOUCHER_REJECTED", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unexpected error", nil)
	}
}

package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-pos/internal/common"
)

// Handler wires catalog reads to HTTP.
type Handler struct {
	Svc *Service
}

// List returns the orderable item list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	items, err := h.Svc.ListItems(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM", "unable to load catalog", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// Detail returns a single item.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	item, err := h.Svc.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "item not found", nil)
			return
		}
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM", "unable to load catalog", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}

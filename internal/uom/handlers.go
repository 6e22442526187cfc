package uom

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/common"
)

// ItemSource provides catalog items for tree rendering.
type ItemSource interface {
	GetItem(ctx context.Context, id int64) (catalog.Item, error)
}

// Handler serves conversion hierarchies for hover/detail views.
type Handler struct {
	Items ItemSource
}

// Tree returns the materialized conversion tree and its display statements
// for one item. Items without conversion data get an empty tree, not an error.
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	if h.Items == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog source not configured", nil)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	item, err := h.Items.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "item not found", nil)
			return
		}
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM", "unable to load catalog", nil)
		return
	}
	roots := BuildTree(item.ConversionUnits)
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"itemId":     item.ID,
			"tree":       roots,
			"statements": Statements(roots),
		},
	})
}

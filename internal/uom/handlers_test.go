package uom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pos/internal/catalog"
)

type stubItems map[int64]catalog.Item

func (s stubItems) GetItem(_ context.Context, id int64) (catalog.Item, error) {
	item, ok := s[id]
	if !ok {
		return catalog.Item{}, catalog.ErrItemNotFound
	}
	return item, nil
}

func TestTreeEndpoint(t *testing.T) {
	items := stubItems{11: {
		ID: 11,
		ConversionUnits: []catalog.ConversionEdge{
			{BaseUomID: 1, BaseUomCode: "PCS", PurchaseUomID: 7, PurchaseUomCode: "BOX", ConversionFactor: 24},
		},
	}}
	r := chi.NewRouter()
	r.Get("/items/{id}/uom-tree", (&Handler{Items: items}).Tree)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/11/uom-tree", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			ItemID     int64       `json:"itemId"`
			Tree       []*TreeNode `json:"tree"`
			Statements []string    `json:"statements"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(11), body.Data.ItemID)
	require.Len(t, body.Data.Tree, 1)
	require.Equal(t, []string{"1 BOX = 24 PCS"}, body.Data.Statements)
}

func TestTreeEndpointNoConversions(t *testing.T) {
	items := stubItems{12: {ID: 12}}
	r := chi.NewRouter()
	r.Get("/items/{id}/uom-tree", (&Handler{Items: items}).Tree)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/12/uom-tree", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"statements":null`)
}

func TestTreeEndpointUnknownItem(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/items/{id}/uom-tree", (&Handler{Items: stubItems{}}).Tree)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/99/uom-tree", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

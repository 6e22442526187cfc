// Package orderline validates prospective order lines against catalog stock,
// price and unit-of-measure data.
package orderline

import (
	"fmt"
	"math"

	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/common"
	"github.com/noah-isme/backend-pos/internal/uom"
)

// LineErrors carries per-field validation messages; an absent field is valid.
type LineErrors struct {
	Quantity string `json:"quantity,omitempty"`
	Uom      string `json:"uom,omitempty"`
	Price    string `json:"price,omitempty"`
	Stock    string `json:"stock,omitempty"`
}

// Empty reports whether no check fired.
func (e *LineErrors) Empty() bool {
	if e == nil {
		return true
	}
	return e.Quantity == "" && e.Uom == "" && e.Price == "" && e.Stock == ""
}

// Fields returns the names of the failing fields.
func (e *LineErrors) Fields() []string {
	if e == nil {
		return nil
	}
	var out []string
	if e.Quantity != "" {
		out = append(out, "quantity")
	}
	if e.Uom != "" {
		out = append(out, "uom")
	}
	if e.Price != "" {
		out = append(out, "price")
	}
	if e.Stock != "" {
		out = append(out, "stock")
	}
	return out
}

// Line is the minimal order line shape the validator operates on.
type Line struct {
	Item     catalog.Item
	Quantity float64
	UomID    int64
}

// ValidateLine checks a prospective line and returns nil when it is valid.
func ValidateLine(item catalog.Item, quantity float64, uomID int64) *LineErrors {
	errs := &LineErrors{}

	if item.TotalRawStock() <= 0 {
		errs.Stock = "item is out of stock"
	}
	if common.ParseAmount(item.SellingPrices.UnitPrice) <= 0 {
		errs.Price = "item has no selling price"
	}
	if uomID == 0 {
		errs.Uom = "select a unit of measure"
	}
	switch {
	case quantity <= 0:
		errs.Quantity = "quantity must be at least 1"
	case uomID != 0:
		available := uom.ResolveAvailableQuantity(item, uomID)
		if quantity > available {
			errs.Quantity = fmt.Sprintf("only %d %s available", int64(math.Floor(available)), uom.Label(item, uomID))
		}
	}

	if errs.Empty() {
		return nil
	}
	return errs
}

// ValidateAll re-validates every selected line and aggregates failures by
// item id. Submission must be blocked while the result is non-empty.
func ValidateAll(lines map[int64]Line) map[int64]*LineErrors {
	out := make(map[int64]*LineErrors)
	for id, line := range lines {
		if errs := ValidateLine(line.Item, line.Quantity, line.UomID); errs != nil {
			out[id] = errs
		}
	}
	return out
}

// ClampQuantity lowers a stored quantity to the floor of the newly available
// stock, never below 1. Used when a UOM change shrinks the available stock
// under the current quantity.
func ClampQuantity(available float64) float64 {
	clamped := math.Floor(available)
	if clamped < 1 {
		return 1
	}
	return clamped
}

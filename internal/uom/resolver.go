// Package uom resolves unit-of-measure stock quantities, prices and
// conversion hierarchies for catalog items.
package uom

import (
	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/common"
)

// DefaultUnitLabel is shown when an item carries no usable UOM data.
const DefaultUnitLabel = "Default Unit"

// PriceSet groups the three price tiers resolved for a unit.
type PriceSet struct {
	Unit      float64
	Wholesale float64
	Credit    float64
}

// ForTier returns the price for the selected tier, falling back to the unit
// price when the tier has no price set.
func (p PriceSet) ForTier(tier catalog.PriceTier) float64 {
	var v float64
	switch tier {
	case catalog.TierWholesale:
		v = p.Wholesale
	case catalog.TierCredit:
		v = p.Credit
	default:
		v = p.Unit
	}
	if v <= 0 {
		return p.Unit
	}
	return v
}

// Breakdown partitions the stock available in the active unit by source location kind.
type Breakdown struct {
	Store     float64
	Warehouse float64
	Other     float64
}

// ResolveAvailableQuantity returns the stock available for the item in the
// target unit. Precomputed per-UOM rows are authoritative when present;
// otherwise the raw location stock is scaled through the matching conversion
// edge. Items with no UOM data at all expose their raw stock unscaled.
func ResolveAvailableQuantity(item catalog.Item, targetUomID int64) float64 {
	if info, ok := perUomEntry(item, targetUomID); ok {
		return common.Sanitize(info.AvailableQuantity)
	}
	totalRaw := item.TotalRawStock()
	edge, ok := edgeForPurchaseUnit(item, targetUomID)
	if !ok {
		return totalRaw
	}
	if edge.AvailableStocks != nil && *edge.AvailableStocks > 0 {
		return *edge.AvailableStocks
	}
	if edge.ConversionFactor <= 0 {
		return totalRaw
	}
	return common.Sanitize(totalRaw / edge.ConversionFactor)
}

// ResolvePrice returns the price tiers applicable in the target unit. The
// per-UOM fast path wins; otherwise the item-level selling prices apply.
func ResolvePrice(item catalog.Item, targetUomID int64) PriceSet {
	if info, ok := perUomEntry(item, targetUomID); ok {
		return PriceSet{
			Unit:      common.ParseAmount(info.UnitPrice),
			Wholesale: common.ParseAmount(info.WholesalePrice),
			Credit:    common.ParseAmount(info.CreditPrice),
		}
	}
	return PriceSet{
		Unit:      common.ParseAmount(item.SellingPrices.UnitPrice),
		Wholesale: common.ParseAmount(item.SellingPrices.WholesalePrice),
		Credit:    common.ParseAmount(item.SellingPrices.CreditPrice),
	}
}

// SplitByLocation partitions the stock available in the target unit
// proportionally to the raw store/warehouse split of the source locations.
// A zero raw total yields an all-zero breakdown.
func SplitByLocation(item catalog.Item, targetUomID int64) Breakdown {
	totalRaw := item.TotalRawStock()
	if totalRaw == 0 {
		return Breakdown{}
	}
	var rawStore, rawWarehouse, rawOther float64
	for _, s := range item.Stocks {
		if s.AvailableQuantity <= 0 {
			continue
		}
		switch catalog.ClassifyLocation(s.Location) {
		case catalog.LocationStore:
			rawStore += s.AvailableQuantity
		case catalog.LocationWarehouse:
			rawWarehouse += s.AvailableQuantity
		default:
			rawOther += s.AvailableQuantity
		}
	}
	active := ResolveAvailableQuantity(item, targetUomID)
	return Breakdown{
		Store:     common.Sanitize(active * rawStore / totalRaw),
		Warehouse: common.Sanitize(active * rawWarehouse / totalRaw),
		Other:     common.Sanitize(active * rawOther / totalRaw),
	}
}

// Label returns the display code of a unit, or DefaultUnitLabel when the item
// has no record of it.
func Label(item catalog.Item, uomID int64) string {
	if info, ok := perUomEntry(item, uomID); ok && info.UomCode != "" {
		return info.UomCode
	}
	for _, edge := range item.ConversionUnits {
		if edge.PurchaseUomID == uomID && edge.PurchaseUomCode != "" {
			return edge.PurchaseUomCode
		}
		if edge.BaseUomID == uomID && edge.BaseUomCode != "" {
			return edge.BaseUomCode
		}
	}
	return DefaultUnitLabel
}

// DefaultUnitID picks the unit a fresh selection starts in: the first
// conversion edge's purchase unit, then its base unit, then none.
func DefaultUnitID(item catalog.Item) (int64, bool) {
	if len(item.ConversionUnits) == 0 {
		if len(item.StocksPricePerUom) > 0 {
			return item.StocksPricePerUom[0].UomID, true
		}
		return 0, false
	}
	first := item.ConversionUnits[0]
	if first.PurchaseUomID != 0 {
		return first.PurchaseUomID, true
	}
	if first.BaseUomID != 0 {
		return first.BaseUomID, true
	}
	return 0, false
}

func perUomEntry(item catalog.Item, uomID int64) (catalog.UomStockInfo, bool) {
	for _, info := range item.StocksPricePerUom {
		if info.UomID == uomID {
			return info, true
		}
	}
	return catalog.UomStockInfo{}, false
}

func edgeForPurchaseUnit(item catalog.Item, uomID int64) (catalog.ConversionEdge, bool) {
	for _, edge := range item.ConversionUnits {
		if edge.PurchaseUomID == uomID {
			return edge, true
		}
	}
	return catalog.ConversionEdge{}, false
}

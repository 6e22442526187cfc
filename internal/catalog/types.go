package catalog

import "strings"

// PriceTier identifies which selling price applies to an order line.
type PriceTier string

// Price tiers supported by the catalog.
const (
	TierUnit      PriceTier = "unit_price"
	TierWholesale PriceTier = "wholesale_price"
	TierCredit    PriceTier = "credit_price"
)

// ParsePriceTier maps an arbitrary string onto a known tier, defaulting to unit price.
func ParsePriceTier(value string) PriceTier {
	switch PriceTier(strings.ToLower(strings.TrimSpace(value))) {
	case TierWholesale:
		return TierWholesale
	case TierCredit:
		return TierCredit
	default:
		return TierUnit
	}
}

// SellingPrices carries the decimal-as-string price tiers of an item.
type SellingPrices struct {
	UnitPrice      string `json:"unit_price"`
	WholesalePrice string `json:"wholesale_price"`
	CreditPrice    string `json:"credit_price"`
}

// LocationKind is the closed classification of a stock location.
type LocationKind string

// Known location kinds.
const (
	LocationStore     LocationKind = "store"
	LocationWarehouse LocationKind = "warehouse"
	LocationUnknown   LocationKind = "unknown"
)

// Location identifies where a stock record lives.
type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// ClassifyLocation normalises a location into a LocationKind. Exact tag match
// is authoritative; the case-insensitive substring match on the display name
// exists only for legacy catalog rows that predate tagging.
func ClassifyLocation(loc Location) LocationKind {
	switch strings.ToLower(strings.TrimSpace(loc.Tag)) {
	case string(LocationStore):
		return LocationStore
	case string(LocationWarehouse):
		return LocationWarehouse
	}
	name := strings.ToLower(loc.Name)
	if strings.Contains(name, string(LocationStore)) {
		return LocationStore
	}
	if strings.Contains(name, string(LocationWarehouse)) {
		return LocationWarehouse
	}
	return LocationUnknown
}

// StockRecord is the quantity of an item available at one location.
type StockRecord struct {
	AvailableQuantity float64  `json:"availableQuantity"`
	Location          Location `json:"location"`
}

// ConversionEdge is a directed edge from a base unit to a purchase unit:
// 1 purchase unit equals ConversionFactor base units.
type ConversionEdge struct {
	BaseUomID       int64    `json:"baseUomId"`
	BaseUomCode     string   `json:"baseUomCode"`
	PurchaseUomID   int64    `json:"purchaseUomId"`
	PurchaseUomCode string   `json:"purchaseUomCode"`
	ConversionFactor float64 `json:"conversionFactor"`
	AvailableStocks *float64 `json:"availableStocks,omitempty"`
}

// UomStockInfo is a precomputed pairing of a UOM with stock and prices in that unit.
type UomStockInfo struct {
	UomID             int64  `json:"uomId"`
	UomCode           string `json:"uomCode"`
	AvailableQuantity float64 `json:"availableQuantity"`
	UnitPrice         string `json:"unitPrice"`
	WholesalePrice    string `json:"wholesalePrice"`
	CreditPrice       string `json:"creditPrice"`
}

// Discount is a promotional rule attached to an item. Amount is kept as the
// raw decimal string; evaluation coerces it (unparseable values count as 0).
// Dates arrive as YYYY-MM-DD or RFC3339 strings.
type Discount struct {
	DiscountType   string   `json:"discountType"`
	Amount         string   `json:"amount"`
	StartDate      string   `json:"startDate,omitempty"`
	EndDate        string   `json:"endDate,omitempty"`
	MinPurchaseQty *float64 `json:"minPurchaseQty,omitempty"`
	MinSpend       *float64 `json:"minSpend,omitempty"`
}

// Item is a catalog item available for ordering.
type Item struct {
	ID                  int64           `json:"id"`
	Description         string          `json:"description"`
	SKU                 string          `json:"sku"`
	SellingPrices       SellingPrices   `json:"selling_prices"`
	TotalAvailableStock *float64        `json:"total_available_stock,omitempty"`
	Stocks              []StockRecord   `json:"stocks"`
	StocksPricePerUom   []UomStockInfo  `json:"stocksPricePerUom,omitempty"`
	ConversionUnits     []ConversionEdge `json:"conversionUnits,omitempty"`
	Discounts           []Discount      `json:"discounts,omitempty"`
}

// Clone returns a per-selection copy of the item so that UOM and price
// overrides on an order line never mutate the shared catalog cache.
func (it Item) Clone() Item {
	out := it
	out.Stocks = append([]StockRecord(nil), it.Stocks...)
	out.StocksPricePerUom = append([]UomStockInfo(nil), it.StocksPricePerUom...)
	out.ConversionUnits = append([]ConversionEdge(nil), it.ConversionUnits...)
	out.Discounts = append([]Discount(nil), it.Discounts...)
	if it.TotalAvailableStock != nil {
		total := *it.TotalAvailableStock
		out.TotalAvailableStock = &total
	}
	return out
}

// TotalRawStock sums availableQuantity across every stock location, falling
// back to total_available_stock when no per-location rows are present.
func (it Item) TotalRawStock() float64 {
	if len(it.Stocks) == 0 {
		if it.TotalAvailableStock != nil {
			return *it.TotalAvailableStock
		}
		return 0
	}
	var total float64
	for _, s := range it.Stocks {
		if s.AvailableQuantity > 0 {
			total += s.AvailableQuantity
		}
	}
	return total
}

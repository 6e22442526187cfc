package orderline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pos/internal/catalog"
)

func sellableItem(stock float64) catalog.Item {
	return catalog.Item{
		ID:            1,
		Description:   "Cooking Oil 1L",
		SellingPrices: catalog.SellingPrices{UnitPrice: "150"},
		Stocks: []catalog.StockRecord{
			{AvailableQuantity: stock, Location: catalog.Location{Tag: "store"}},
		},
		StocksPricePerUom: []catalog.UomStockInfo{
			{UomID: 5, UomCode: "BTL", AvailableQuantity: stock, UnitPrice: "150"},
		},
	}
}

func TestValidateLineValid(t *testing.T) {
	require.Nil(t, ValidateLine(sellableItem(20), 5, 5))
}

func TestValidateLineOutOfStock(t *testing.T) {
	item := sellableItem(0)
	item.StocksPricePerUom = nil

	errs := ValidateLine(item, 1, 5)
	require.NotNil(t, errs)
	require.Equal(t, "item is out of stock", errs.Stock)
}

func TestValidateLineNoPrice(t *testing.T) {
	item := sellableItem(20)
	item.SellingPrices.UnitPrice = ""

	errs := ValidateLine(item, 1, 5)
	require.NotNil(t, errs)
	require.Equal(t, "item has no selling price", errs.Price)
}

func TestValidateLineMissingUom(t *testing.T) {
	errs := ValidateLine(sellableItem(20), 1, 0)
	require.NotNil(t, errs)
	require.Equal(t, "select a unit of measure", errs.Uom)
}

func TestValidateLineZeroQuantity(t *testing.T) {
	errs := ValidateLine(sellableItem(20), 0, 5)
	require.NotNil(t, errs)
	require.Equal(t, "quantity must be at least 1", errs.Quantity)
}

func TestValidateLineQuantityExceedsStock(t *testing.T) {
	errs := ValidateLine(sellableItem(24.7), 30, 5)
	require.NotNil(t, errs)
	require.Equal(t, "only 24 BTL available", errs.Quantity)
}

func TestValidateLineMultipleFailures(t *testing.T) {
	item := catalog.Item{ID: 2, Description: "Discontinued"}

	errs := ValidateLine(item, 0, 0)
	require.NotNil(t, errs)
	require.ElementsMatch(t, []string{"quantity", "uom", "price", "stock"}, errs.Fields())
}

func TestValidateAllAggregatesOnlyFailures(t *testing.T) {
	lines := map[int64]Line{
		1: {Item: sellableItem(20), Quantity: 5, UomID: 5},
		2: {Item: sellableItem(20), Quantity: 0, UomID: 5},
		3: {Item: sellableItem(2), Quantity: 10, UomID: 5},
	}

	out := ValidateAll(lines)
	require.Len(t, out, 2)
	require.NotContains(t, out, int64(1))
	require.NotEmpty(t, out[2].Quantity)
	require.NotEmpty(t, out[3].Quantity)
}

func TestClampQuantity(t *testing.T) {
	require.Equal(t, 4.0, ClampQuantity(4.9))
	require.Equal(t, 1.0, ClampQuantity(0.3))
	require.Equal(t, 1.0, ClampQuantity(-2))
	require.Equal(t, 12.0, ClampQuantity(12))
}

func TestLineErrorsEmpty(t *testing.T) {
	var nilErrs *LineErrors
	require.True(t, nilErrs.Empty())
	require.True(t, (&LineErrors{}).Empty())
	require.False(t, (&LineErrors{Stock: "item is out of stock"}).Empty())
}

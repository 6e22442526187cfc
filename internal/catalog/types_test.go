package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyLocation(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want LocationKind
	}{
		{"tag store", Location{Tag: "store"}, LocationStore},
		{"tag warehouse", Location{Tag: "warehouse"}, LocationWarehouse},
		{"tag wins over name", Location{Tag: "store", Name: "Central Warehouse"}, LocationStore},
		{"legacy name store", Location{Name: "Main Store Front"}, LocationStore},
		{"legacy name warehouse", Location{Name: "North WAREHOUSE 2"}, LocationWarehouse},
		{"unclassifiable", Location{Name: "Consignment"}, LocationUnknown},
		{"empty", Location{}, LocationUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ClassifyLocation(tc.loc))
		})
	}
}

func TestParsePriceTier(t *testing.T) {
	require.Equal(t, TierWholesale, ParsePriceTier("wholesale_price"))
	require.Equal(t, TierCredit, ParsePriceTier(" CREDIT_PRICE "))
	require.Equal(t, TierUnit, ParsePriceTier("unit_price"))
	require.Equal(t, TierUnit, ParsePriceTier("anything else"))
	require.Equal(t, TierUnit, ParsePriceTier(""))
}

func TestItemCloneIsolatesSlices(t *testing.T) {
	total := 100.0
	item := Item{
		ID:                  1,
		TotalAvailableStock: &total,
		Stocks:              []StockRecord{{AvailableQuantity: 10}},
		Discounts:           []Discount{{Amount: "5"}},
	}

	clone := item.Clone()
	clone.Stocks[0].AvailableQuantity = 99
	clone.Discounts[0].Amount = "50"
	*clone.TotalAvailableStock = 0

	require.Equal(t, 10.0, item.Stocks[0].AvailableQuantity)
	require.Equal(t, "5", item.Discounts[0].Amount)
	require.Equal(t, 100.0, *item.TotalAvailableStock)
}

func TestTotalRawStock(t *testing.T) {
	item := Item{Stocks: []StockRecord{
		{AvailableQuantity: 60},
		{AvailableQuantity: -5},
		{AvailableQuantity: 40},
	}}
	require.Equal(t, 100.0, item.TotalRawStock())
}

func TestTotalRawStockFallsBackToAggregate(t *testing.T) {
	total := 75.0
	require.Equal(t, 75.0, Item{TotalAvailableStock: &total}.TotalRawStock())
	require.Equal(t, 0.0, Item{}.TotalRawStock())
}

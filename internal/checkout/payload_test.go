package checkout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyMethod(t *testing.T) {
	tests := []struct {
		tag  string
		want MethodKind
	}{
		{"cash", MethodCash},
		{"CASH", MethodCash},
		{"petty_cash", MethodCash},
		{"credit", MethodCredit},
		{"store_credit", MethodCredit},
		{"credit_memo", MethodCredit},
		{"bank_transfer", MethodOther},
		{"", MethodOther},
	}
	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			require.Equal(t, tc.want, ClassifyMethod(tc.tag))
		})
	}
}

func TestSubmitOrderRequestWireShape(t *testing.T) {
	voucherID := int64(9)
	po := "PO-1042"
	payload := SubmitOrderRequest{
		PaymentMethod: PaymentMethod{ID: 2, Tag: "cash"},
		OrderedItems: []OrderedItem{
			{ID: 11, SelectedUomID: 5, Quantity: 3},
		},
		TotalPayable: 450,
		PaidAmount:   500,
		UsedVoucher:  &voucherID,
		VouchersUsed: &voucherID,
		WithTax:      true,
		PONumber:     &po,
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.NotContains(t, decoded, "order_id")
	require.NotContains(t, decoded, "is_draft")
	require.NotContains(t, decoded, "draft_id")
	require.NotContains(t, decoded, "override_email")
	require.Equal(t, 450.0, decoded["total_payable"])
	require.Equal(t, 500.0, decoded["paid_amount"])
	require.Equal(t, 9.0, decoded["used_voucher"])
	require.Equal(t, true, decoded["with_tax"])
	require.Equal(t, "PO-1042", decoded["po_number"])

	items, ok := decoded["ordered_items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	require.Equal(t, 11.0, first["id"])
	require.Equal(t, 5.0, first["selected_uom_id"])
	require.Equal(t, 3.0, first["quantity"])
}

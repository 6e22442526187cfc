// Package checkout assembles and submits the order payload, gating on line
// validation, cash sufficiency and payment-method rules.
package checkout

import "strings"

// PaymentMethod is the tender selected at submission time.
type PaymentMethod struct {
	ID  int64  `json:"id"`
	Tag string `json:"tag"`
}

// MethodKind is the closed classification of a payment method.
type MethodKind string

// Known payment method kinds.
const (
	MethodCash   MethodKind = "cash"
	MethodCredit MethodKind = "credit"
	MethodOther  MethodKind = "other"
)

// ClassifyMethod normalises a payment-method tag. Substring matching is the
// legacy contract: "store_credit" and "credit_memo" both count as credit.
func ClassifyMethod(tag string) MethodKind {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	switch {
	case strings.Contains(normalized, string(MethodCredit)):
		return MethodCredit
	case strings.Contains(normalized, string(MethodCash)):
		return MethodCash
	default:
		return MethodOther
	}
}

// OrderedItem is one submitted line.
type OrderedItem struct {
	ID            int64   `json:"id"`
	SelectedUomID int64   `json:"selected_uom_id"`
	Quantity      float64 `json:"quantity"`
}

// SubmitOrderRequest is the wire payload accepted by the order-submission
// endpoint. Tax is forwarded only as the with_tax flag; amount fields carry
// the client-side totals untouched.
type SubmitOrderRequest struct {
	OrderID          *int64        `json:"order_id,omitempty"`
	CustomerID       *int64        `json:"customer_id,omitempty"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	OrderedItems     []OrderedItem `json:"ordered_items"`
	TotalPayable     float64       `json:"total_payable"`
	PaidAmount       float64       `json:"paid_amount"`
	UsedVoucher      *int64        `json:"used_voucher,omitempty"`
	VouchersUsed     *int64        `json:"vouchers_used,omitempty"`
	WithTax          bool          `json:"with_tax"`
	IsDraft          bool          `json:"is_draft,omitempty"`
	DraftID          *int64        `json:"draft_id,omitempty"`
	PONumber         *string       `json:"po_number,omitempty"`
	OverrideEmail    string        `json:"override_email,omitempty"`
	OverridePassword string        `json:"override_password,omitempty"`
}

// Package voucher talks to the external voucher-apply endpoint. Voucher
// eligibility and discount resolution happen server-side; this client only
// carries the applied result into the order session.
package voucher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/noah-isme/backend-pos/internal/resilience"
)

// ErrRejected is returned when the upstream refuses the voucher code.
var ErrRejected = errors.New("voucher rejected")

// Applied is the voucher state carried on an order session. At most one is
// applied at a time; applying a new one replaces the prior.
type Applied struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	Description    string  `json:"description,omitempty"`
}

// Client resolves voucher codes against an order amount.
type Client interface {
	Apply(ctx context.Context, code string, orderAmount float64) (Applied, error)
}

// HTTPClient implements Client over the upstream HTTP endpoint.
type HTTPClient struct {
	BaseURL string
	HTTP    resilience.HTTPClient
}

type applyRequest struct {
	Code        string  `json:"code"`
	OrderAmount float64 `json:"order_amount"`
}

type applyResponse struct {
	Voucher struct {
		ID          int64  `json:"id"`
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"voucher"`
	DiscountAmount float64 `json:"discount_amount"`
	NewTotal       float64 `json:"new_total"`
	Message        string  `json:"message"`
}

// Apply resolves the voucher code for the given order amount.
func (c HTTPClient) Apply(ctx context.Context, code string, orderAmount float64) (Applied, error) {
	if strings.TrimSpace(code) == "" {
		return Applied{}, fmt.Errorf("%w: code is required", ErrRejected)
	}
	body, err := json.Marshal(applyRequest{Code: code, OrderAmount: orderAmount})
	if err != nil {
		return Applied{}, err
	}
	url := strings.TrimRight(c.BaseURL, "/") + "/vouchers/apply"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Applied{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(ctx, req)
	if err != nil {
		return Applied{}, fmt.Errorf("voucher: apply: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded applyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && resp.StatusCode == http.StatusOK {
		return Applied{}, fmt.Errorf("voucher: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := decoded.Message
		if msg == "" {
			msg = resp.Status
		}
		return Applied{}, fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return Applied{
		ID:             decoded.Voucher.ID,
		Code:           decoded.Voucher.Code,
		DiscountAmount: decoded.DiscountAmount,
		Description:    decoded.Voucher.Description,
	}, nil
}

package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/noah-isme/backend-pos/internal/common"
	"github.com/noah-isme/backend-pos/internal/resilience"
)

// SubmitResult is the upstream acknowledgement of a submitted order or draft.
type SubmitResult struct {
	OrderID int64  `json:"order_id"`
	DraftID int64  `json:"draft_id"`
	Status  string `json:"status"`
}

// CreditLimitError signals the customer's credit limit was exceeded. Recovery
// is user-initiated: resubmit the same payload with override credentials.
type CreditLimitError struct {
	Message string
}

func (e *CreditLimitError) Error() string {
	if e.Message == "" {
		return "credit limit exceeded"
	}
	return e.Message
}

// UpstreamValidationError carries field-keyed messages echoed by the server.
type UpstreamValidationError struct {
	Fields map[string][]string
}

func (e *UpstreamValidationError) Error() string {
	return "order rejected by upstream validation"
}

// Client submits assembled order payloads.
type Client interface {
	Submit(ctx context.Context, req SubmitOrderRequest) (SubmitResult, error)
}

// HTTPClient implements Client against the order-submission endpoint. It
// never retries on its own; all recovery is user-initiated.
type HTTPClient struct {
	BaseURL string
	HTTP    resilience.HTTPClient
}

type submitResponse struct {
	SubmitResult
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// Submit posts the payload and maps the upstream error taxonomy.
func (c HTTPClient) Submit(ctx context.Context, payload SubmitOrderRequest) (SubmitResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return SubmitResult{}, err
	}
	url := strings.TrimRight(c.BaseURL, "/") + "/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return SubmitResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(ctx, req)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("checkout: submit order: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded submitResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&decoded)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if decodeErr != nil {
			return SubmitResult{}, fmt.Errorf("checkout: decode response: %w", decodeErr)
		}
		return decoded.SubmitResult, nil
	case strings.EqualFold(decoded.Error, "credit_limit"):
		return SubmitResult{}, &CreditLimitError{Message: decoded.Message}
	case len(decoded.Errors) > 0:
		return SubmitResult{}, &UpstreamValidationError{Fields: decoded.Errors}
	default:
		msg := decoded.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %s", resp.Status)
		}
		return SubmitResult{}, common.NewAppError("UPSTREAM", msg, http.StatusBadGateway, nil)
	}
}

package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pos/internal/resilience"
)

func newOrdersServer(t *testing.T, handler http.HandlerFunc) HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return HTTPClient{
		BaseURL: srv.URL,
		HTTP:    resilience.HTTPClient{Client: srv.Client()},
	}
}

func TestSubmitAccepted(t *testing.T) {
	client := newOrdersServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, 350.0, body["total_payable"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order_id": 88, "status": "confirmed"}`))
	})

	result, err := client.Submit(context.Background(), SubmitOrderRequest{TotalPayable: 350})
	require.NoError(t, err)
	require.Equal(t, int64(88), result.OrderID)
	require.Equal(t, "confirmed", result.Status)
}

func TestSubmitCreditLimit(t *testing.T) {
	client := newOrdersServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "credit_limit", "message": "customer credit limit reached"}`))
	})

	_, err := client.Submit(context.Background(), SubmitOrderRequest{})
	var creditErr *CreditLimitError
	require.ErrorAs(t, err, &creditErr)
	require.Equal(t, "customer credit limit reached", creditErr.Error())
}

func TestSubmitUpstreamValidation(t *testing.T) {
	client := newOrdersServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors": {"ordered_items": ["item 11 is no longer available"]}}`))
	})

	_, err := client.Submit(context.Background(), SubmitOrderRequest{})
	var upstreamErr *UpstreamValidationError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, []string{"item 11 is no longer available"}, upstreamErr.Fields["ordered_items"])
}

func TestSubmitUnexpectedStatus(t *testing.T) {
	client := newOrdersServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.Submit(context.Background(), SubmitOrderRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status")
}

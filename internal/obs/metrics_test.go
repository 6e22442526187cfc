package obs

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestParseBucketsCSV(t *testing.T) {
	require.Nil(t, ParseBucketsCSV(""))
	require.Equal(t, []float64{5, 10, 25}, ParseBucketsCSV("5, 10,25"))
	require.Equal(t, []float64{10}, ParseBucketsCSV("abc, -5, 10"))
}

func TestDurationMillis(t *testing.T) {
	require.Equal(t, 1500.0, DurationMillis(1500*time.Millisecond))
}

func TestNewHTTPMetricsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewHTTPMetrics("pos_test", nil, reg)
	second := NewHTTPMetrics("pos_test", nil, reg)
	require.Same(t, first.ReqTotal, second.ReqTotal)
}

func TestMustRegisterDomainMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegisterDomainMetrics("pos_test", reg)
	require.NotNil(t, OrdersSubmittedTotal)
	require.NotNil(t, DraftsSavedTotal)
	require.NotNil(t, VouchersAppliedTotal)
	require.NotNil(t, LineValidationFailsTotal)
	require.NotNil(t, CreditOverridesTotal)

	OrdersSubmittedTotal.WithLabelValues("cash", "success").Inc()
}

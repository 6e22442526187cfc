package obs

import "github.com/prometheus/client_golang/prometheus"

// Domain collectors shared across services. Registered once at startup via
// MustRegisterDomainMetrics; nil until then so library code must guard.
var (
	OrdersSubmittedTotal     *prometheus.CounterVec
	DraftsSavedTotal         prometheus.Counter
	VouchersAppliedTotal     *prometheus.CounterVec
	LineValidationFailsTotal *prometheus.CounterVec
	CreditOverridesTotal     *prometheus.CounterVec
)

// MustRegisterDomainMetrics registers POS domain metrics on the provided registerer.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	OrdersSubmittedTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Order submissions grouped by payment kind and result.",
	}, []string{"payment_kind", "result"}))
	DraftsSavedTotal = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drafts_saved_total",
		Help:      "Number of draft orders saved.",
	}))
	VouchersAppliedTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vouchers_applied_total",
		Help:      "Voucher applications grouped by result.",
	}, []string{"result"}))
	LineValidationFailsTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "line_validation_failures_total",
		Help:      "Order line validation failures grouped by field.",
	}, []string{"field"}))
	CreditOverridesTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credit_overrides_total",
		Help:      "Credit-limit override resubmissions grouped by result.",
	}, []string{"result"}))
}

package monitoring

// BusinessMetrics records storefront events on the package collectors.
type BusinessMetrics struct{}

func NewBusinessMetrics() *BusinessMetrics {
	return &BusinessMetrics{}
}

func (m *BusinessMetrics) CartOperation(storefront, operation string) {
	CartOperationsTotal.WithLabelValues(storefront, operation).Inc()
}

func (m *BusinessMetrics) CheckoutAttempt(storefront, kind string) {
	CheckoutAttemptsTotal.WithLabelValues(storefront, kind).Inc()
}

func (m *BusinessMetrics) CheckoutSuccess(storefront, kind string) {
	CheckoutSuccessTotal.WithLabelValues(storefront, kind).Inc()
}

func (m *BusinessMetrics) CheckoutFailure(storefront, kind, reason string) {
	CheckoutFailureTotal.WithLabelValues(storefront, kind, reason).Inc()
}

func (m *BusinessMetrics) DeepLink(storefront, channel string) {
	DeepLinksTotal.WithLabelValues(storefront, channel).Inc()
}

type SubmitGuardMetrics struct {
	key string
}

func NewSubmitGuardMetrics(key string) *SubmitGuardMetrics {
	return &SubmitGuardMetrics{
		key: key,
	}
}

func (m *SubmitGuardMetrics) RecordAttempt() {
	RecordGuardAttempt(m.key)
}

func (m *SubmitGuardMetrics) RecordSuccess() {
	RecordGuardSuccess(m.key)
}

func (m *SubmitGuardMetrics) RecordFailure(reason string) {
	RecordGuardFailure(m.key, reason)
}

package infrastructures

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce     sync.Once
	metricsRegistry *Metrics
)

// Metrics wraps the collectors tracking redemption and payout activity.
type Metrics struct {
	redemptions    *prometheus.CounterVec
	redeemLatency  *prometheus.HistogramVec
	withdrawals    *prometheus.CounterVec
	payoutReviews  *prometheus.CounterVec
	pointsCredited *prometheus.CounterVec
}

// NewMetrics returns the lazily initialised metrics registry.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsRegistry = &Metrics{
			redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "caceasy",
				Subsystem: "redemption",
				Name:      "attempts_total",
				Help:      "Coupon redemption attempts segmented by scan path and outcome.",
			}, []string{"path", "outcome"}),
			redeemLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "caceasy",
				Subsystem: "redemption",
				Name:      "duration_seconds",
				Help:      "Latency of the redemption transaction including lock wait.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"path"}),
			pointsCredited: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "caceasy",
				Subsystem: "redemption",
				Name:      "points_credited_total",
				Help:      "Points credited by successful redemptions segmented by credited party.",
			}, []string{"party"}),
			withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "caceasy",
				Subsystem: "wallet",
				Name:      "withdrawal_requests_total",
				Help:      "Withdrawal requests segmented by party type and outcome.",
			}, []string{"party", "outcome"}),
			payoutReviews: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "caceasy",
				Subsystem: "payout",
				Name:      "reviews_total",
				Help:      "Admin payout reviews segmented by decision.",
			}, []string{"decision"}),
		}
		prometheus.MustRegister(
			metricsRegistry.redemptions,
			metricsRegistry.redeemLatency,
			metricsRegistry.pointsCredited,
			metricsRegistry.withdrawals,
			metricsRegistry.payoutReviews,
		)
	})
	return metricsRegistry
}

func (m *Metrics) ObserveRedemption(path, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.redemptions.WithLabelValues(path, outcome).Inc()
	m.redeemLatency.WithLabelValues(path).Observe(time.Since(started).Seconds())
}

func (m *Metrics) AddPointsCredited(party string, points int64) {
	if m == nil || points <= 0 {
		return
	}
	m.pointsCredited.WithLabelValues(party).Add(float64(points))
}

func (m *Metrics) ObserveWithdrawal(party, outcome string) {
	if m == nil {
		return
	}
	m.withdrawals.WithLabelValues(party, outcome).Inc()
}

func (m *Metrics) ObservePayoutReview(decision string) {
	if m == nil {
		return
	}
	m.payoutReviews.WithLabelValues(decision).Inc()
}

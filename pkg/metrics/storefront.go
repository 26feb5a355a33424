package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "marketoo"

// StorefrontMetrics records session activity. A nil receiver is a no-op.
type StorefrontMetrics struct {
	notices        *prometheus.CounterVec
	orders         *prometheus.CounterVec
	views          prometheus.Counter
	persistFailure *prometheus.CounterVec
	queryResults   *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	notices := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_notices_total",
		Help:      "Advisory cart notices by type.",
	}, []string{"type"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_total",
		Help:      "Order summaries handed off, by action.",
	}, []string{"action"})
	views := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_views_total",
		Help:      "Recorded product views.",
	})
	persistFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recent_persist_failures_total",
		Help:      "Recently viewed storage failures, by operation.",
	}, []string{"op"})
	queryResults := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_results",
		Help:      "Number of products returned by catalog queries.",
		Buckets:   []float64{0, 1, 4, 8, 16, 32, 64, 128},
	}, []string{"sort"})
	reg.MustRegister(notices, orders, views, persistFailure, queryResults)
	return &StorefrontMetrics{
		notices:        notices,
		orders:         orders,
		views:          views,
		persistFailure: persistFailure,
		queryResults:   queryResults,
	}
}

// IncNotice counts a cart notice of the given type.
func (m *StorefrontMetrics) IncNotice(noticeType string) {
	if m == nil || m.notices == nil {
		return
	}
	m.notices.WithLabelValues(normalizeLabel(noticeType)).Inc()
}

// IncOrder counts an order handoff for the given action.
func (m *StorefrontMetrics) IncOrder(action string) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(action)).Inc()
}

func (m *StorefrontMetrics) IncView() {
	if m == nil || m.views == nil {
		return
	}
	m.views.Inc()
}

// IncPersistFailure counts a failed load or save of the recently viewed list.
func (m *StorefrontMetrics) IncPersistFailure(op string) {
	if m == nil || m.persistFailure == nil {
		return
	}
	m.persistFailure.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveQueryResults records the size of a query result under its sort key.
func (m *StorefrontMetrics) ObserveQueryResults(sort string, count int) {
	if m == nil || m.queryResults == nil {
		return
	}
	m.queryResults.WithLabelValues(normalizeLabel(sort)).Observe(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

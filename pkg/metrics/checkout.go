package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the checkout creation HTTP handler
	CheckoutDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_create_latency_seconds",
		Help:    "Latency of checkout creation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of checkout attempts, successful or not
	CheckoutAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Total number of checkout attempts",
	})

	// Checkouts that committed successfully
	CheckoutCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_completed_total",
		Help: "Total number of successfully committed checkouts",
	})

	// Checkouts rejected because a product ran out of stock
	CheckoutOutOfStock = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_out_of_stock_total",
		Help: "Checkouts aborted by the stock guard",
	})
)

func Init() {
	prometheus.MustRegister(
		CheckoutDuration,
		CheckoutAttempts,
		CheckoutCompleted,
		CheckoutOutOfStock,
	)
}

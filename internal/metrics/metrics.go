// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PurchaseChecks counts verifier outcomes: purchased|not_purchased|anonymous|empty|error.
	PurchaseChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bought_tab_purchase_checks_total",
			Help: "Purchase verification outcomes",
		},
		[]string{"result"},
	)
	// SkippedRecords counts host records ignored during verification: order|line_item.
	SkippedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bought_tab_skipped_records_total",
			Help: "Order records skipped while verifying purchases",
		},
		[]string{"kind"},
	)
	// TabRenders counts bought tab renders: unlocked|locked.
	TabRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bought_tab_renders_total",
			Help: "Bought product tab renders by visibility",
		},
		[]string{"state"},
	)
	// TabRenderFailures counts tabs dropped from a product page because rendering failed.
	TabRenderFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bought_tab_render_failures_total",
			Help: "Tabs omitted because their render callback failed",
		},
		[]string{"tab"},
	)
	// SeedRecords counts seed import outcomes: imported|skipped.
	SeedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bought_tab_seed_records_total",
			Help: "Tab content seed records by outcome",
		},
		[]string{"result"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bought_tab_cache_operations_total",
			Help: "Tab content cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired|invalidated
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bought_tab_cache_size",
			Help: "Number of tab contents currently cached",
		},
	)
)

var registerOnce sync.Once

// MustRegister registers every collector with the default registry. Safe to call more than once.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			PurchaseChecks,
			SkippedRecords,
			TabRenders,
			TabRenderFailures,
			SeedRecords,
			CacheOps,
			CacheSize,
		)
	})
}

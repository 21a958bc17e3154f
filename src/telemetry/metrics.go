package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/RaduPetrila-dev/Low-Latency-Order-Book-Simulator/src/engine"
)

// Metrics is a Prometheus collector bundle for one OrderBook. It
// never touches the book's matching path directly: trade counters are
// fed through a TradeCallback, and book-state gauges are refreshed by
// calling Observe on whatever schedule the embedder chooses.
type Metrics struct {
	tradesExecuted  prometheus.Counter
	volumeTraded    prometheus.Counter
	restingOrders   prometheus.Gauge
	poolUtilization prometheus.Gauge
	bestBid         prometheus.Gauge
	bestAsk         prometheus.Gauge
}

// NewMetrics registers a fresh set of collectors under namespace on
// reg. Callers typically pass prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		tradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_executed_total",
			Help:      "Total number of trades executed by the book.",
		}),
		volumeTraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "volume_traded_total",
			Help:      "Total traded quantity across all trades.",
		}),
		restingOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resting_orders",
			Help:      "Current number of resting orders on both sides of the book.",
		}),
		poolUtilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_utilization_ratio",
			Help:      "Fraction of the order pool currently in use.",
		}),
		bestBid: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_bid",
			Help:      "Current best bid price, 0 when the bid side is empty.",
		}),
		bestAsk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_ask",
			Help:      "Current best ask price, 0 when the ask side is empty.",
		}),
	}

	reg.MustRegister(
		m.tradesExecuted,
		m.volumeTraded,
		m.restingOrders,
		m.poolUtilization,
		m.bestBid,
		m.bestAsk,
	)
	return m
}

// TradeCallback returns an engine.TradeCallback that advances the
// trade/volume counters. Combine with the book's own callback (or
// telemetry's trade logger) using a small fan-out closure if more than
// one sink is needed; the core grants exactly one callback slot.
func (m *Metrics) TradeCallback() engine.TradeCallback {
	return func(t engine.Trade) {
		m.tradesExecuted.Inc()
		m.volumeTraded.Add(float64(t.Quantity))
	}
}

// Observe refreshes the gauges from the book's current state. The
// core has no hooks for this, by design (§5 forbids background tasks
// inside it), so the embedder calls Observe on its own cadence.
func (m *Metrics) Observe(ob *engine.OrderBook, poolCapacity int) {
	m.restingOrders.Set(float64(ob.TotalOrders()))
	if poolCapacity > 0 {
		m.poolUtilization.Set(float64(ob.TotalOrders()) / float64(poolCapacity))
	}
	m.bestBid.Set(float64(ob.BestBid()))
	m.bestAsk.Set(float64(ob.BestAsk()))
}

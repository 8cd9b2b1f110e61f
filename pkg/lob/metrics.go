package lob

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments an Engine updates as it
// applies events. Sampling-cadence gauges (arena high-water marks) are
// refreshed by a driver via Engine.Sample, not on the hot path itself,
// matching the "acceptable to do off the latency-critical path" carve
// out of §5 for anything beyond O(k) per-event work.
//
// Adapted from abdoElHodaky-tradSys/internal/trading/app/app.go's
// Metrics struct and initMetrics constructor.
type Metrics struct {
	eventsTotal   *prometheus.CounterVec
	booksActive   prometheus.Gauge
	directorySize prometheus.Gauge
	levelArenaHWM *prometheus.GaugeVec
	orderArenaHWM *prometheus.GaugeVec
}

// NewMetrics registers the engine's instruments against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lob_events_total",
			Help: "Number of events applied by kind.",
		}, []string{"kind"}),
		booksActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lob_books_active",
			Help: "Number of books realized in the book table.",
		}),
		directorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lob_directory_size",
			Help: "Number of live entries in the order directory.",
		}),
		levelArenaHWM: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lob_level_arena_high_water",
			Help: "Level arena high-water mark per book.",
		}, []string{"book"}),
		orderArenaHWM: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lob_order_arena_high_water",
			Help: "Order arena high-water mark per book.",
		}, []string{"book"}),
	}

	reg.MustRegister(m.eventsTotal, m.booksActive, m.directorySize, m.levelArenaHWM, m.orderArenaHWM)
	return m
}

func (m *Metrics) observe(kind string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(kind).Inc()
}

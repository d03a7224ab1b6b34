package grove

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the renderer's collectors. A nil *metrics records nothing.
type metrics struct {
	framesTotal   prometheus.Counter
	nodesResolved prometheus.Gauge
	renderItems   prometheus.Gauge
	anchorsActive prometheus.Gauge
	absorbedTotal *prometheus.CounterVec
	frameDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	return &metrics{
		framesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_resolved_total",
			Help:      "Total frames resolved",
		}),
		nodesResolved: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes_resolved",
			Help:      "Nodes resolved in the last frame",
		}),
		renderItems: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "render_items",
			Help:      "Model instances in the last render list",
		}),
		anchorsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grab_anchors",
			Help:      "Active grab anchors",
		}),
		absorbedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "absorbed_errors_total",
			Help:      "Errors absorbed during resolution by kind",
		}, []string{"kind"}),
		frameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_resolve_duration_seconds",
			Help:      "Time spent in ResolveFrame",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12), // 50us to ~100ms
		}),
	}
}

func (m *metrics) observeFrame(stats FrameStats, anchors int) {
	if m == nil {
		return
	}
	m.framesTotal.Inc()
	m.nodesResolved.Set(float64(stats.Resolved))
	m.renderItems.Set(float64(stats.RenderItems))
	m.anchorsActive.Set(float64(anchors))
	m.frameDuration.Observe((stats.TraverseTime + stats.ResolveTime).Seconds())
}

func (m *metrics) absorbed(err error) {
	if m == nil {
		return
	}
	m.absorbedTotal.WithLabelValues(errorKind(err)).Inc()
}

// errorKind maps an absorbed error to its metric label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnidentifiedContext):
		return "unidentified_context"
	case errors.Is(err, ErrUnknownNode):
		return "unknown_node"
	case errors.Is(err, ErrStaleReference):
		return "stale_reference"
	case errors.Is(err, ErrMissingProperty):
		return "missing_property"
	case errors.Is(err, ErrDependencyCycle):
		return "dependency_cycle"
	default:
		return "other"
	}
}

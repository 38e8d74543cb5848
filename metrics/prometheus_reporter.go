package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusReporter reports scene metrics to prometheus
type PrometheusReporter struct {
	registry *prometheus.Registry

	tickDuration     *prometheus.HistogramVec
	changedLayers    *prometheus.CounterVec
	changedInstances *prometheus.CounterVec
	instances        *prometheus.GaugeVec
	layers           *prometheus.GaugeVec
}

// NewPrometheusReporter creates the collectors under namespace on a private registry
func NewPrometheusReporter(namespace string) *PrometheusReporter {
	if namespace == "" {
		namespace = "scene"
	}
	r := &PrometheusReporter{
		registry: prometheus.NewRegistry(),
		tickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "the time to tick a map and fan out its listeners",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"map"}),
		changedLayers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changed_layers_total",
			Help:      "the number of layers reported as changed by map ticks",
		}, []string{"map"}),
		changedInstances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changed_instances_total",
			Help:      "the number of instances reported as changed by layer ticks",
		}, []string{"map", "layer"}),
		instances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "instances",
			Help:      "the number of instances owned by a layer",
		}, []string{"map", "layer"}),
		layers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layers",
			Help:      "the number of layers owned by a map",
		}, []string{"map"}),
	}
	r.registry.MustRegister(r.tickDuration, r.changedLayers, r.changedInstances, r.instances, r.layers)
	return r
}

// ReportTick imp.
func (r *PrometheusReporter) ReportTick(mapID string, elapsed time.Duration, changedLayers int) {
	r.tickDuration.WithLabelValues(mapID).Observe(elapsed.Seconds())
	r.changedLayers.WithLabelValues(mapID).Add(float64(changedLayers))
}

// ReportChangedInstances imp.
func (r *PrometheusReporter) ReportChangedInstances(mapID string, layerID string, count int) {
	r.changedInstances.WithLabelValues(mapID, layerID).Add(float64(count))
}

// ReportInstances imp.
func (r *PrometheusReporter) ReportInstances(mapID string, layerID string, count int) {
	r.instances.WithLabelValues(mapID, layerID).Set(float64(count))
}

// ReportLayers imp.
func (r *PrometheusReporter) ReportLayers(mapID string, count int) {
	r.layers.WithLabelValues(mapID).Set(float64(count))
}

// Registry the private registry
func (r *PrometheusReporter) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry
func (r *PrometheusReporter) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

package observability

import (
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raywall/fast-sns/pkg/metrics"
)

// PrometheusProvider traduz métricas no formato statsd ("nome.com.pontos", tags "chave:valor")
// para coletores Prometheus criados sob demanda.
//
// Os labels de uma métrica são fixados na primeira emissão; chaves ausentes
// em emissões seguintes viram label vazio e chaves novas são ignoradas.
type PrometheusProvider struct {
	namespace string
	registry  *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]*promVec[*prometheus.CounterVec]
	gauges     map[string]*promVec[*prometheus.GaugeVec]
	histograms map[string]*promVec[*prometheus.HistogramVec]
}

type promVec[V any] struct {
	vec    V
	labels []string
}

// NewPrometheusProvider cria o provedor. Registry nulo cria um registro próprio.
func NewPrometheusProvider(namespace string, registry *prometheus.Registry) *PrometheusProvider {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &PrometheusProvider{
		namespace:  namespace,
		registry:   registry,
		counters:   map[string]*promVec[*prometheus.CounterVec]{},
		gauges:     map[string]*promVec[*prometheus.GaugeVec]{},
		histograms: map[string]*promVec[*prometheus.HistogramVec]{},
	}
}

// Registry devolve o registro usado pelo provedor.
func (p *PrometheusProvider) Registry() *prometheus.Registry { return p.registry }

// Handler expõe as métricas no formato de exposição do Prometheus.
func (p *PrometheusProvider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// MetricsHandler devolve o handler /metrics do PrometheusProvider contido em p
// (diretamente ou dentro de um MultiProvider), ou nil se não houver.
func MetricsHandler(p metrics.Provider) http.Handler {
	switch v := p.(type) {
	case *PrometheusProvider:
		return v.Handler()
	case MultiProvider:
		for _, inner := range v {
			if h := MetricsHandler(inner); h != nil {
				return h
			}
		}
	}
	return nil
}

func (p *PrometheusProvider) Count(name string, value float64, tags []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.counters[name]
	if !ok {
		labels := labelNames(tags)
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      metricName(name),
			Help:      name,
		}, labels)
		if err := p.registry.Register(vec); err != nil {
			return err
		}
		v = &promVec[*prometheus.CounterVec]{vec: vec, labels: labels}
		p.counters[name] = v
	}
	v.vec.With(labelValues(v.labels, tags)).Add(value)
	return nil
}

func (p *PrometheusProvider) Gauge(name string, value float64, tags []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.gauges[name]
	if !ok {
		labels := labelNames(tags)
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      metricName(name),
			Help:      name,
		}, labels)
		if err := p.registry.Register(vec); err != nil {
			return err
		}
		v = &promVec[*prometheus.GaugeVec]{vec: vec, labels: labels}
		p.gauges[name] = v
	}
	v.vec.With(labelValues(v.labels, tags)).Set(value)
	return nil
}

func (p *PrometheusProvider) Histogram(name string, value float64, tags []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.histograms[name]
	if !ok {
		labels := labelNames(tags)
		vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Name:      metricName(name),
			Help:      name,
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}, labels)
		if err := p.registry.Register(vec); err != nil {
			return err
		}
		v = &promVec[*prometheus.HistogramVec]{vec: vec, labels: labels}
		p.histograms[name] = v
	}
	v.vec.With(labelValues(v.labels, tags)).Observe(value)
	return nil
}

func metricName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

func splitTag(tag string) (string, string) {
	k, v, found := strings.Cut(tag, ":")
	if !found {
		return metricName(tag), ""
	}
	return metricName(k), v
}

func labelNames(tags []string) []string {
	names := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		k, _ := splitTag(t)
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}
	return names
}

func labelValues(names, tags []string) prometheus.Labels {
	labels := make(prometheus.Labels, len(names))
	for _, n := range names {
		labels[n] = ""
	}
	for _, t := range tags {
		k, v := splitTag(t)
		if _, ok := labels[k]; ok {
			labels[k] = v
		}
	}
	return labels
}

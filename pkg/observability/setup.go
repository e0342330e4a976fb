package observability

import (
	"errors"
	"fmt"
	"io"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/fast-sns/pkg/config"
	"github.com/raywall/fast-sns/pkg/metrics"
)

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client statsd.ClientInterface
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close descarrega o buffer e fecha o socket do statsd.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// MultiProvider replica cada métrica para todos os provedores.
type MultiProvider []metrics.Provider

func (m MultiProvider) Count(name string, value float64, tags []string) error {
	return m.each(func(p metrics.Provider) error { return p.Count(name, value, tags) })
}

func (m MultiProvider) Gauge(name string, value float64, tags []string) error {
	return m.each(func(p metrics.Provider) error { return p.Gauge(name, value, tags) })
}

func (m MultiProvider) Histogram(name string, value float64, tags []string) error {
	return m.each(func(p metrics.Provider) error { return p.Histogram(name, value, tags) })
}

// Close fecha os provedores que mantêm recursos abertos.
func (m MultiProvider) Close() error {
	var errs []error
	for _, p := range m {
		errs = append(errs, Close(p))
	}
	return errors.Join(errs...)
}

func (m MultiProvider) each(fn func(metrics.Provider) error) error {
	var first error
	for _, p := range m {
		if err := fn(p); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SetupMetrics inicializa o provedor correto baseado na configuração.
//
// Com Datadog e Prometheus habilitados, devolve um MultiProvider. O PrometheusProvider
// não abre servidor; use Handler() para expor /metrics.
func SetupMetrics(cfg config.MetricsConf) (metrics.Provider, error) {
	var providers MultiProvider

	if cfg.Datadog.Enabled {
		client, err := statsd.New(cfg.Datadog.Addr, statsd.WithNamespace(cfg.Datadog.Namespace))
		if err != nil {
			return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
		}
		providers = append(providers, &DatadogProvider{client: client})
	}

	if cfg.Prometheus.Enabled {
		providers = append(providers, NewPrometheusProvider(cfg.Prometheus.Namespace, nil))
	}

	switch len(providers) {
	case 0:
		return &NoopProvider{}, nil
	case 1:
		return providers[0], nil
	}
	return providers, nil
}

// Close libera os recursos do provedor devolvido por SetupMetrics.
// Provedores sem recursos (Noop, Prometheus) são ignorados.
func Close(p metrics.Provider) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

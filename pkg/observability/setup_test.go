package observability

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/fast-sns/pkg/config"
	"github.com/raywall/fast-sns/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStatsd struct {
	statsd.ClientInterface
	mock.Mock
}

func (m *mockStatsd) Count(name string, value int64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Gauge(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Histogram(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Close() error {
	return m.Called().Error(0)
}

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{})
		require.NoError(t, err)
		assert.IsType(t, &NoopProvider{}, provider)
		assert.NoError(t, provider.Count("x", 1, nil))
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{
			Datadog: config.DatadogConf{Enabled: true, Addr: "localhost:8125"},
		})
		require.NoError(t, err)
		assert.IsType(t, &DatadogProvider{}, provider)
	})

	t.Run("Prometheus only", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{
			Prometheus: config.PrometheusConf{Enabled: true, Namespace: "fastsns"},
		})
		require.NoError(t, err)
		assert.IsType(t, &PrometheusProvider{}, provider)
	})

	t.Run("Both returns Multi", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{
			Datadog:    config.DatadogConf{Enabled: true, Addr: "localhost:8125"},
			Prometheus: config.PrometheusConf{Enabled: true},
		})
		require.NoError(t, err)
		multi, ok := provider.(MultiProvider)
		require.True(t, ok)
		assert.Len(t, multi, 2)
	})
}

func TestDatadogProvider(t *testing.T) {
	m := &mockStatsd{}
	tags := []string{"operation:Publish"}
	m.On("Count", "sns.client.requests", int64(1), tags, float64(1)).Return(nil)
	m.On("Gauge", "sns.async.queued", float64(7), tags, float64(1)).Return(nil)
	m.On("Histogram", "sns.client.latency_ms", float64(12.5), tags, float64(1)).Return(errors.New("udp closed"))

	d := &DatadogProvider{client: m}
	assert.NoError(t, d.Count("sns.client.requests", 1, tags))
	assert.NoError(t, d.Gauge("sns.async.queued", 7, tags))
	assert.Error(t, d.Histogram("sns.client.latency_ms", 12.5, tags))
	m.AssertExpectations(t)
}

func TestMultiProvider_ReturnsFirstError(t *testing.T) {
	failing := &mockStatsd{}
	failing.On("Count", "x", int64(1), []string(nil), float64(1)).Return(errors.New("boom"))
	prom := NewPrometheusProvider("", nil)

	multi := MultiProvider{&DatadogProvider{client: failing}, prom}
	assert.EqualError(t, multi.Count("x", 1, nil), "boom")

	families, err := prom.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1, "o segundo provedor também deve receber a métrica")
}

func TestPrometheusProvider(t *testing.T) {
	p := NewPrometheusProvider("fastsns", nil)
	var _ metrics.Provider = p

	require.NoError(t, p.Count("sns.client.requests", 1, []string{"operation:Publish", "outcome:success"}))
	require.NoError(t, p.Count("sns.client.requests", 2, []string{"outcome:success", "operation:Publish", "extra:ignored"}))
	require.NoError(t, p.Gauge("sns.async.queued", 3, nil))
	require.NoError(t, p.Histogram("sns.client.latency_ms", 42, []string{"operation:Publish"}))

	families, err := p.Registry().Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, f := range families {
		m := f.GetMetric()[0]
		switch {
		case m.GetCounter() != nil:
			byName[f.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			byName[f.GetName()] = m.GetGauge().GetValue()
		case m.GetHistogram() != nil:
			byName[f.GetName()] = float64(m.GetHistogram().GetSampleCount())
		}
	}
	assert.Equal(t, float64(3), byName["fastsns_sns_client_requests"])
	assert.Equal(t, float64(3), byName["fastsns_sns_async_queued"])
	assert.Equal(t, float64(1), byName["fastsns_sns_client_latency_ms"])

	srv := httptest.NewServer(p.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `fastsns_sns_client_requests{operation="Publish",outcome="success"} 3`)
}

func TestMetricsHandler(t *testing.T) {
	assert.Nil(t, MetricsHandler(&NoopProvider{}))

	prom := NewPrometheusProvider("fastsns", nil)
	require.NoError(t, prom.Count("sns.emulator.requests", 1, []string{"action:Publish"}))

	h := MetricsHandler(MultiProvider{&NoopProvider{}, prom})
	require.NotNil(t, h)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `fastsns_sns_emulator_requests{action="Publish"} 1`)
}

func TestClose(t *testing.T) {
	t.Run("Datadog fecha o client statsd", func(t *testing.T) {
		m := &mockStatsd{}
		m.On("Close").Return(nil).Once()
		assert.NoError(t, Close(&DatadogProvider{client: m}))
		m.AssertExpectations(t)
	})

	t.Run("Multi fecha todos e agrega erros", func(t *testing.T) {
		first, second := &mockStatsd{}, &mockStatsd{}
		first.On("Close").Return(errors.New("flush falhou")).Once()
		second.On("Close").Return(nil).Once()

		multi := MultiProvider{&DatadogProvider{client: first}, NewPrometheusProvider("", nil), &DatadogProvider{client: second}}
		assert.ErrorContains(t, Close(multi), "flush falhou")
		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("Provedores sem recursos", func(t *testing.T) {
		assert.NoError(t, Close(&NoopProvider{}))
		assert.NoError(t, Close(NewPrometheusProvider("", nil)))
		assert.NoError(t, Close(nil))
	})

	t.Run("Client real do SetupMetrics", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{
			Datadog: config.DatadogConf{Enabled: true, Addr: "localhost:8125"},
		})
		require.NoError(t, err)
		assert.NoError(t, Close(provider))
	})
}

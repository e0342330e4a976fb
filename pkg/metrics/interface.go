package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por Prometheus sem alterar o client SNS.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// MetricType define os tipos suportados.
type MetricType string

const (
	TypeCount     MetricType = "count"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// MetricDefinition armazena os metadados da métrica (nome real, tipo).
type MetricDefinition struct {
	Name string
	Type MetricType
}

// Nomes das métricas emitidas pelo client.
var (
	ClientRequests = MetricDefinition{Name: "sns.client.requests", Type: TypeCount}
	ClientLatency  = MetricDefinition{Name: "sns.client.latency_ms", Type: TypeHistogram}
	ClientRetries  = MetricDefinition{Name: "sns.client.retries", Type: TypeCount}
	EmulatorCalls  = MetricDefinition{Name: "sns.emulator.requests", Type: TypeCount}
	AsyncQueued    = MetricDefinition{Name: "sns.async.queued", Type: TypeGauge}
)

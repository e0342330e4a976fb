package metrics

import (
	"fmt"
	"time"
)

// Outcome classifica o resultado de uma chamada.
const (
	OutcomeSuccess      = "success"
	OutcomeServiceError = "service_error"
	OutcomeClientError  = "client_error"
)

// CallRecorder traduz o resultado de cada chamada em métricas do Provider.
//
// Um *CallRecorder nil é válido e não registra nada.
type CallRecorder struct {
	provider Provider
	baseTags []string
}

// NewCallRecorder cria um recorder. Tags extras (ex: "region:us-east-1") são anexadas a todas as métricas.
func NewCallRecorder(p Provider, tags ...string) *CallRecorder {
	if p == nil {
		return nil
	}
	return &CallRecorder{provider: p, baseTags: tags}
}

// Record registra contagem, latência e número de retries de uma operação.
// Falhas do provider são devolvidas agregadas, mas todas as métricas são tentadas.
func (r *CallRecorder) Record(operation, outcome string, latency time.Duration, retries int) error {
	if r == nil {
		return nil
	}
	tags := r.tags("operation:"+operation, "outcome:"+outcome)

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("falha ao registrar métrica: %w", err)
		}
	}

	keep(r.emit(ClientRequests, 1, tags))
	keep(r.emit(ClientLatency, float64(latency.Microseconds())/1000, tags))
	if retries > 0 {
		keep(r.emit(ClientRetries, float64(retries), r.tags("operation:"+operation)))
	}
	return firstErr
}

// Emit envia um valor para uma definição arbitrária.
func (r *CallRecorder) Emit(def MetricDefinition, value float64, tags ...string) error {
	if r == nil {
		return nil
	}
	return r.emit(def, value, r.tags(tags...))
}

func (r *CallRecorder) emit(def MetricDefinition, value float64, tags []string) error {
	switch def.Type {
	case TypeCount:
		return r.provider.Count(def.Name, value, tags)
	case TypeGauge:
		return r.provider.Gauge(def.Name, value, tags)
	case TypeHistogram:
		return r.provider.Histogram(def.Name, value, tags)
	default:
		return fmt.Errorf("tipo de métrica desconhecido: %s", def.Type)
	}
}

func (r *CallRecorder) tags(extra ...string) []string {
	out := make([]string, 0, len(r.baseTags)+len(extra))
	out = append(out, r.baseTags...)
	return append(out, extra...)
}

package sns

import (
	"context"
	"errors"

	"github.com/raywall/fast-sns/pkg/metrics"
	"github.com/rs/zerolog"
)

const (
	// DefaultWorkers é o tamanho padrão do pool assíncrono.
	DefaultWorkers = 10
	// DefaultQueueSize é a capacidade padrão da fila de chamadas pendentes.
	DefaultQueueSize = 1024
)

// AsyncOptions configura o AsyncClient.
type AsyncOptions struct {
	Workers int
	// QueueSize é a capacidade da fila. Zero usa DefaultQueueSize e negativo
	// desliga a fila: cada submissão espera um worker livre.
	QueueSize int
	Logger    *zerolog.Logger
	Metrics   metrics.Provider
}

// AsyncClient executa as operações do SNS em um pool de goroutines.
//
// Cada <Op>Async devolve uma Future; handlers opcionais são notificados
// antes da resolução da Future, com o mesmo resultado.
type AsyncClient struct {
	api      API
	pool     *pool
	log      zerolog.Logger
	recorder *metrics.CallRecorder
}

// NewAsync cria um AsyncClient sobre qualquer implementação de API.
func NewAsync(api API, opts AsyncOptions) *AsyncClient {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	} else if opts.QueueSize == 0 {
		opts.QueueSize = DefaultQueueSize
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "sns-async").Logger()
	}

	return &AsyncClient{
		api:      api,
		pool:     newPool(opts.Workers, opts.QueueSize, log),
		log:      log,
		recorder: metrics.NewCallRecorder(opts.Metrics),
	}
}

// API devolve o client síncrono encapsulado.
func (a *AsyncClient) API() API { return a.api }

// Shutdown para o pool sem bloquear. Chamadas na fila são resolvidas com
// ErrPoolShutdown e chamadas em execução terminam normalmente. O client
// síncrono encapsulado não é encerrado.
func (a *AsyncClient) Shutdown() { a.pool.shutdown() }

// Wait aguarda os workers terminarem após o Shutdown.
func (a *AsyncClient) Wait(ctx context.Context) error { return a.pool.wait(ctx) }

// submit é o caminho comum de todas as operações <Op>Async.
func submit[In, Out any](
	ctx context.Context,
	a *AsyncClient,
	name string,
	in *In,
	call func(context.Context, *In) (*Out, error),
	handlers []Handler[In, Out],
) *Future[Out] {
	var notify func(*Out, error)
	if len(handlers) > 0 {
		notify = func(out *Out, err error) {
			for _, h := range handlers {
				if err != nil {
					h.OnError(err)
				} else {
					h.OnSuccess(in, out)
				}
			}
		}
	}
	f := newFuture(a.log.With().Str("operation", name).Logger(), notify)

	t := task{
		run: func() {
			if !f.start() {
				return
			}
			out, err := call(ctx, in)
			if err != nil {
				f.resolve(nil, err, StateRunning, StateFailed)
				return
			}
			f.resolve(out, nil, StateRunning, StateSucceeded)
		},
		reject: func(err error) {
			f.resolve(nil, err, StateSubmitted, StateFailed)
		},
	}

	if err := a.pool.submit(ctx, t); err != nil {
		if !errors.Is(err, ErrPoolShutdown) {
			err = &ClientError{Operation: name, Err: err}
		}
		t.reject(err)
	}
	if err := a.recorder.Emit(metrics.AsyncQueued, float64(a.pool.queued())); err != nil {
		a.log.Warn().Err(err).Str("operation", name).Msg("falha ao registrar métricas")
	}
	return f
}

// voidCall adapta operações sem resultado para o formato de submit.
func voidCall[In any](fn func(context.Context, *In) error) func(context.Context, *In) (*struct{}, error) {
	return func(ctx context.Context, in *In) (*struct{}, error) {
		if err := fn(ctx, in); err != nil {
			return nil, err
		}
		return &struct{}{}, nil
	}
}

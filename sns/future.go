package sns

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// State é o estado de uma chamada assíncrona.
type State int32

const (
	StateSubmitted State = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal informa se o estado é final.
func (s State) Terminal() bool { return s >= StateSucceeded }

// Handler recebe a notificação de conclusão de uma chamada assíncrona.
// Exatamente um dos métodos é chamado, antes de a Future ser resolvida.
type Handler[In, Out any] interface {
	OnSuccess(in *In, out *Out)
	OnError(err error)
}

// HandlerFuncs adapta funções soltas para Handler. Campos nil são ignorados.
type HandlerFuncs[In, Out any] struct {
	Success func(in *In, out *Out)
	Error   func(err error)
}

func (h HandlerFuncs[In, Out]) OnSuccess(in *In, out *Out) {
	if h.Success != nil {
		h.Success(in, out)
	}
}

func (h HandlerFuncs[In, Out]) OnError(err error) {
	if h.Error != nil {
		h.Error(err)
	}
}

// Future é o resultado pendente de uma chamada assíncrona.
//
// A resolução acontece uma única vez. Done e Get são os pontos de sincronização.
type Future[T any] struct {
	state  atomic.Int32
	done   chan struct{}
	val    *T
	err    error
	notify func(*T, error)
	log    zerolog.Logger
}

func newFuture[T any](log zerolog.Logger, notify func(*T, error)) *Future[T] {
	return &Future[T]{
		done:   make(chan struct{}),
		notify: notify,
		log:    log,
	}
}

// Get bloqueia até a resolução ou até ctx terminar.
// O término de ctx não cancela a chamada.
func (f *Future[T]) Get(ctx context.Context) (*T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done é fechado quando a Future é resolvida.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// State devolve o estado atual.
func (f *Future[T]) State() State { return State(f.state.Load()) }

// Cancel impede o início da chamada se ela ainda estiver na fila.
// Devolve false se a chamada já começou ou terminou.
func (f *Future[T]) Cancel() bool {
	return f.resolve(nil, ErrCanceled, StateSubmitted, StateCanceled)
}

func (f *Future[T]) start() bool {
	return f.state.CompareAndSwap(int32(StateSubmitted), int32(StateRunning))
}

// resolve faz a transição from -> to, notifica o handler e fecha done.
func (f *Future[T]) resolve(v *T, err error, from, to State) bool {
	if !f.state.CompareAndSwap(int32(from), int32(to)) {
		return false
	}
	f.val, f.err = v, err
	f.fire(v, err)
	close(f.done)
	return true
}

func (f *Future[T]) fire(v *T, err error) {
	if f.notify == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			f.log.Error().Interface("panic", r).Msg("handler assíncrono entrou em pânico")
		}
	}()
	f.notify(v, err)
}

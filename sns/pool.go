package sns

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// task é uma unidade de trabalho do pool. reject só tem efeito se a tarefa não começou.
type task struct {
	run    func()
	reject func(error)
}

// pool é um conjunto fixo de workers alimentado por uma fila limitada.
type pool struct {
	tasks  chan task
	quit   chan struct{}
	closed atomic.Bool
	once   sync.Once
	wg     sync.WaitGroup
	log    zerolog.Logger
}

func newPool(workers, queueSize int, log zerolog.Logger) *pool {
	p := &pool{
		tasks: make(chan task, queueSize),
		quit:  make(chan struct{}),
		log:   log,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case t := <-p.tasks:
			if p.closed.Load() {
				t.reject(ErrPoolShutdown)
				continue
			}
			t.run()
		}
	}
}

// submit enfileira a tarefa, bloqueando enquanto a fila estiver cheia.
// Devolve ErrPoolShutdown ou o erro de ctx quando a tarefa não foi aceita.
func (p *pool) submit(ctx context.Context, t task) error {
	if p.closed.Load() {
		return ErrPoolShutdown
	}
	select {
	case p.tasks <- t:
		// Shutdown concorrente: a tarefa pode ter entrado depois do dreno.
		if p.closed.Load() {
			p.drain()
		}
		return nil
	case <-p.quit:
		return ErrPoolShutdown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// drain rejeita tudo o que estiver na fila sem bloquear.
func (p *pool) drain() {
	for {
		select {
		case t := <-p.tasks:
			t.reject(ErrPoolShutdown)
		default:
			return
		}
	}
}

func (p *pool) shutdown() {
	p.once.Do(func() {
		p.closed.Store(true)
		close(p.quit)
		p.log.Debug().Msg("pool encerrado")
	})
	p.drain()
}

func (p *pool) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pool) queued() int { return len(p.tasks) }

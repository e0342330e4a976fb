package emulator

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/raywall/fast-sns/pkg/config"
	"github.com/raywall/fast-sns/pkg/rules"
)

type fault struct {
	conf  config.FaultConf
	rule  *rules.Rule
	fired int
}

// Faults injeta erros configurados quando a expressão CEL da regra é verdadeira.
//
// As regras são avaliadas na ordem da configuração; a primeira que casar e
// ainda tiver disparos disponíveis define o erro devolvido.
type Faults struct {
	mu     sync.Mutex
	faults []*fault
	calls  map[string]int
}

// NewFaults compila as regras. Uma lista vazia gera um Faults que nunca falha.
func NewFaults(confs []config.FaultConf) (*Faults, error) {
	f := &Faults{calls: map[string]int{}}
	if len(confs) == 0 {
		return f, nil
	}

	rm, err := rules.NewRuleManager()
	if err != nil {
		return nil, err
	}
	for _, c := range confs {
		rule, err := rm.Compile(c.Expr)
		if err != nil {
			return nil, fmt.Errorf("fault %s: %w", c.ID, err)
		}
		f.faults = append(f.faults, &fault{conf: c, rule: rule})
	}
	return f, nil
}

// check registra a chamada e devolve o erro injetado, se houver.
func (f *Faults) check(action string, p params) (*apiError, error) {
	if f == nil {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[action]++
	if len(f.faults) == 0 {
		return nil, nil
	}

	vars := map[string]interface{}{
		"action": action,
		"params": p.flat(),
		"calls":  f.calls[action],
	}
	for _, ft := range f.faults {
		if ft.conf.Times > 0 && ft.fired >= ft.conf.Times {
			continue
		}
		ok, err := ft.rule.Match(vars)
		if err != nil {
			return nil, fmt.Errorf("fault %s: %w", ft.conf.ID, err)
		}
		if !ok {
			continue
		}
		ft.fired++

		status := ft.conf.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		msg := ft.conf.Message
		if msg == "" {
			msg = "injected fault " + ft.conf.ID
		}
		return &apiError{Status: status, Code: ft.conf.Code, Message: msg}, nil
	}
	return nil, nil
}

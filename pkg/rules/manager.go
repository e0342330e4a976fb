package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// RuleManager gerencia a compilação e avaliação de expressões CEL sobre as
// requisições recebidas pelo emulador.
type RuleManager struct {
	env *cel.Env
}

// Rule é uma expressão booleana já compilada.
type Rule struct {
	Expr string
	prg  cel.Program
}

// NewRuleManager inicializa o ambiente CEL com as variáveis expostas às regras:
//
//	action  string               nome da ação Query (ex: "Publish")
//	params  map(string, string)  parâmetros do formulário da requisição
//	calls   int                  quantas vezes a ação já foi chamada (incluindo a atual)
func NewRuleManager() (*RuleManager, error) {
	env, err := cel.NewEnv(
		cel.Variable("action", cel.StringType),
		cel.Variable("params", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("calls", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}

	return &RuleManager{env: env}, nil
}

// Compile valida a expressão e devolve a regra pronta para avaliação.
// A expressão precisa resultar em booleano.
func (rm *RuleManager) Compile(expr string) (*Rule, error) {
	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro compilação CEL '%s': %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expressão CEL '%s' deve resultar em bool, resultou em %s", expr, ast.OutputType())
	}

	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar programa CEL: %w", err)
	}
	return &Rule{Expr: expr, prg: prg}, nil
}

// Match avalia a regra com as variáveis informadas.
func (r *Rule) Match(vars map[string]interface{}) (bool, error) {
	out, _, err := r.prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("erro execução CEL '%s': %w", r.Expr, err)
	}
	val, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("resultado não é booleano")
	}
	return val, nil
}

package emulator

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/raywall/fast-sns/sns"
)

const (
	filterScopeAttributes = "MessageAttributes"
	filterScopeBody       = "MessageBody"
)

// filterPolicy é a FilterPolicy de uma assinatura já decodificada.
//
// Chaves são combinadas com AND e os valores de cada chave com OR. Condições
// aceitas: string, número, booleano, null e os operadores prefix, suffix,
// equals-ignore-case, anything-but, exists e numeric. "$or" combina
// sub-políticas. Objetos aninhados só fazem sentido no escopo MessageBody.
type filterPolicy map[string]any

func parseFilterPolicy(raw string) (filterPolicy, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var fp filterPolicy
	if err := json.Unmarshal([]byte(raw), &fp); err != nil {
		return nil, invalidParameter("FilterPolicy: failed to parse JSON")
	}
	if err := validatePolicy(fp); err != nil {
		return nil, err
	}
	return fp, nil
}

func validatePolicy(policy map[string]any) error {
	for key, cond := range policy {
		switch c := cond.(type) {
		case map[string]any:
			if err := validatePolicy(c); err != nil {
				return err
			}
		case []any:
			if key == "$or" {
				for _, alt := range c {
					sub, ok := alt.(map[string]any)
					if !ok {
						return invalidParameter("FilterPolicy: $or must contain objects")
					}
					if err := validatePolicy(sub); err != nil {
						return err
					}
				}
				continue
			}
			for _, v := range c {
				if err := validateCondition(key, v); err != nil {
					return err
				}
			}
		default:
			return invalidParameter("FilterPolicy: %s must be an object or an array", key)
		}
	}
	return nil
}

func validateCondition(key string, v any) error {
	op, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if len(op) != 1 {
		return invalidParameter("FilterPolicy: %s: only one operator per condition", key)
	}
	for name, arg := range op {
		switch name {
		case "prefix", "suffix", "equals-ignore-case":
			if _, ok := arg.(string); !ok {
				return invalidParameter("FilterPolicy: %s: %s must be a string", key, name)
			}
		case "exists":
			if _, ok := arg.(bool); !ok {
				return invalidParameter("FilterPolicy: %s: exists must be a boolean", key)
			}
		case "anything-but":
			if err := validateAnythingBut(key, arg); err != nil {
				return err
			}
		case "numeric":
			ops, ok := arg.([]any)
			if !ok || len(ops) == 0 || len(ops)%2 != 0 {
				return invalidParameter("FilterPolicy: %s: numeric must be a list of operator/value pairs", key)
			}
			for i := 0; i < len(ops); i += 2 {
				if _, ok := ops[i].(string); !ok {
					return invalidParameter("FilterPolicy: %s: invalid numeric operator", key)
				}
				if _, ok := ops[i+1].(float64); !ok {
					return invalidParameter("FilterPolicy: %s: numeric value must be a number", key)
				}
			}
		default:
			return invalidParameter("FilterPolicy: %s: unrecognized operator %s", key, name)
		}
	}
	return nil
}

// validateAnythingBut aceita um escalar, uma lista de escalares ou um único
// operador de texto (prefix, suffix, equals-ignore-case).
func validateAnythingBut(key string, arg any) error {
	switch a := arg.(type) {
	case []any:
		for _, x := range a {
			if !isScalar(x) {
				return invalidParameter("FilterPolicy: %s: anything-but list accepts only strings, numbers and booleans", key)
			}
		}
	case map[string]any:
		if len(a) != 1 {
			return invalidParameter("FilterPolicy: %s: anything-but accepts a single operator", key)
		}
		for name, v := range a {
			switch name {
			case "prefix", "suffix", "equals-ignore-case":
				if _, ok := v.(string); !ok {
					return invalidParameter("FilterPolicy: %s: anything-but %s must be a string", key, name)
				}
			default:
				return invalidParameter("FilterPolicy: %s: unsupported anything-but operator %s", key, name)
			}
		}
	default:
		if !isScalar(a) {
			return invalidParameter("FilterPolicy: %s: invalid anything-but value", key)
		}
	}
	return nil
}

// isScalar informa se v é um valor JSON comparável com ==.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, float64, bool:
		return true
	}
	return false
}

// attributeDocument converte atributos de mensagem para o documento avaliado pela política.
// Atributos Binary são ignorados.
func attributeDocument(attrs map[string]sns.MessageAttributeValue) map[string]any {
	doc := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		switch {
		case strings.HasPrefix(attr.DataType, "String.Array"):
			var arr []any
			if err := json.Unmarshal([]byte(attr.StringValue), &arr); err == nil {
				doc[name] = arr
			}
		case strings.HasPrefix(attr.DataType, "Number"):
			if f, err := strconv.ParseFloat(attr.StringValue, 64); err == nil {
				doc[name] = f
			}
		case strings.HasPrefix(attr.DataType, "String"):
			doc[name] = attr.StringValue
		}
	}
	return doc
}

// matches avalia a política da assinatura para uma mensagem.
func (fp filterPolicy) matches(scope, message string, attrs map[string]sns.MessageAttributeValue) bool {
	if len(fp) == 0 {
		return true
	}
	if scope == filterScopeBody {
		var doc map[string]any
		if err := json.Unmarshal([]byte(message), &doc); err != nil {
			return false
		}
		return matchDocument(fp, doc)
	}
	return matchDocument(fp, attributeDocument(attrs))
}

func matchDocument(policy map[string]any, doc map[string]any) bool {
	for key, cond := range policy {
		if key == "$or" {
			alts, _ := cond.([]any)
			if !matchAnyPolicy(alts, doc) {
				return false
			}
			continue
		}

		val, present := doc[key]
		switch c := cond.(type) {
		case map[string]any:
			sub, ok := val.(map[string]any)
			if !ok || !matchDocument(c, sub) {
				return false
			}
		case []any:
			if !matchConditions(c, val, present) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func matchAnyPolicy(alts []any, doc map[string]any) bool {
	for _, alt := range alts {
		if sub, ok := alt.(map[string]any); ok && matchDocument(sub, doc) {
			return true
		}
	}
	return false
}

func matchConditions(conds []any, val any, present bool) bool {
	values, ok := val.([]any)
	if !ok {
		values = []any{val}
	}
	for _, cond := range conds {
		if matchCondition(cond, values, present) {
			return true
		}
	}
	return false
}

func matchCondition(cond any, values []any, present bool) bool {
	if op, ok := cond.(map[string]any); ok {
		if want, ok := op["exists"].(bool); ok {
			return present == want
		}
	}
	if !present {
		return false
	}

	for _, v := range values {
		if matchValue(cond, v) {
			return true
		}
	}
	return false
}

func matchValue(cond, v any) bool {
	switch c := cond.(type) {
	case nil:
		return v == nil
	case string, float64, bool:
		return isScalar(v) && c == v
	case map[string]any:
		for name, arg := range c {
			return matchOperator(name, arg, v)
		}
	}
	return false
}

func matchOperator(name string, arg, v any) bool {
	switch name {
	case "prefix":
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, arg.(string))
	case "suffix":
		s, ok := v.(string)
		return ok && strings.HasSuffix(s, arg.(string))
	case "equals-ignore-case":
		s, ok := v.(string)
		return ok && strings.EqualFold(s, arg.(string))
	case "anything-but":
		switch a := arg.(type) {
		case []any:
			for _, x := range a {
				if isScalar(x) && isScalar(v) && x == v {
					return false
				}
			}
			return true
		case map[string]any:
			return !matchValue(a, v)
		default:
			return !isScalar(v) || a != v
		}
	case "numeric":
		n, ok := v.(float64)
		if !ok {
			return false
		}
		ops := arg.([]any)
		for i := 0; i+1 < len(ops); i += 2 {
			op, _ := ops[i].(string)
			ref, _ := ops[i+1].(float64)
			if !compareNumeric(op, n, ref) {
				return false
			}
		}
		return true
	}
	return false
}

func compareNumeric(op string, n, ref float64) bool {
	switch op {
	case "=":
		return n == ref
	case "<":
		return n < ref
	case "<=":
		return n <= ref
	case ">":
		return n > ref
	case ">=":
		return n >= ref
	}
	return false
}

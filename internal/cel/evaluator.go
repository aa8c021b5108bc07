// Package cel wraps cel-go for the expression query mode. Expressions
// reference the parsed TOML document through the variable "_".
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates a CEL evaluator with the standard extensions.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Evaluate evaluates expr against data bound to "_" and converts the
// result back to plain Go values.
// Example: "_.project.dependencies.filter(d, d != '')".
func (e *Evaluator) Evaluate(expr string, data any) (any, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	result, _, err := prg.Eval(map[string]any{"_": data})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}

	converted := ToGo(result)
	if refVal, ok := converted.(ref.Val); ok {
		converted = refVal.Value()
	}
	return converted, nil
}

// ToGo converts CEL values to Go native types recursively. Collection
// values surface as []any and map[string]any so the formatter can treat
// expression results like resolver results.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Null:
		return nil
	}

	inner := val.Value()
	switch iv := inner.(type) {
	case []ref.Val:
		out := make([]any, len(iv))
		for i, elem := range iv {
			out[i] = ToGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(iv))
		for i, elem := range iv {
			out[i] = convertElement(elem)
		}
		return out
	case map[string]any:
		return convertMapValues(iv)
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(iv))
		for k, v := range iv {
			out[fmt.Sprintf("%v", k.Value())] = ToGo(v)
		}
		return out
	}
	return inner
}

func convertElement(elem any) any {
	switch e := elem.(type) {
	case ref.Val:
		return ToGo(e)
	case map[string]any:
		return convertMapValues(e)
	case []any:
		out := make([]any, len(e))
		for i, v := range e {
			out[i] = convertElement(v)
		}
		return out
	default:
		return elem
	}
}

func convertMapValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = convertElement(v)
	}
	return out
}

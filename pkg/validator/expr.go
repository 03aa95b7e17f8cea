package validator

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/lumenpulse/apikit/pkg/payload"
)

// Expr compiles a CEL expression into a constraint. The field value is bound
// to the variable "value" and the expression must evaluate to a bool.
// Evaluation errors count as a failed check.
//
//	validator.Expr("slug", "value.matches('^[a-z0-9-]+$')", "must be a slug")
func Expr(name, expression, message string) (Constraint, error) {
	env, err := cel.NewEnv(
		cel.Variable("value", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
	if err != nil {
		return Constraint{}, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return Constraint{}, fmt.Errorf("%w: %q: %w", ErrInvalidExpression, expression, issues.Err())
	}
	switch t := ast.OutputType().String(); t {
	case "bool", "dyn":
	default:
		return Constraint{}, fmt.Errorf("%w: %q evaluates to %s, want bool", ErrInvalidExpression, expression, t)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return Constraint{}, fmt.Errorf("%w: %q: %w", ErrInvalidExpression, expression, err)
	}

	return Rule(name, message, func(v payload.Value) bool {
		out, _, err := prg.Eval(map[string]any{"value": v.Interface()})
		if err != nil {
			return false
		}
		ok, isBool := out.Value().(bool)
		return isBool && ok
	}), nil
}

// MustExpr is like Expr but panics on error.
func MustExpr(name, expression, message string) Constraint {
	c, err := Expr(name, expression, message)
	if err != nil {
		panic(err)
	}
	return c
}

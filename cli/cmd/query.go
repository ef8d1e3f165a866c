package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/cfglang/log"
)

// Query evaluates an expr-lang expression over the compiled constants of a
// document. Every constant is bound as a variable of the same name.
type Query struct {
	Expr   string `arg:"" help:"Expression to evaluate, e.g. 'port + 1' or 'len(hosts)'." name:"expr"`
	Source string `       help:"Source file or '-' for stdin." default:"-" short:"s"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := compileSource(ctx, q.Source)
	if err != nil {
		return err
	}

	result, err := evalQuery(q.Expr, env.ToMap())
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "query",
		slog.String("expr", q.Expr),
		slog.String("type", fmt.Sprintf("%T", result)))

	out, err := formatQueryResult(result)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	_, err = fmt.Fprintln(StdioFrom(ctx).Out, out)

	return err
}

// evalQuery compiles source against vars and runs it.
func evalQuery(source string, vars map[string]any) (any, error) {
	program, err := expr.Compile(source, expr.Env(vars))
	if err != nil {
		return nil, ErrQuery.
			With(slog.String("expr", source)).
			Wrap(err)
	}

	result, err := expr.Run(program, vars)
	if err != nil {
		return nil, ErrQuery.
			With(slog.String("expr", source)).
			Wrap(err)
	}

	return result, nil
}

// formatQueryResult prints strings verbatim and everything else as JSON.
func formatQueryResult(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

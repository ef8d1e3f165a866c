package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/cfglang/log"
)

// Option configures a compilation.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger used for trace output during compilation.
// The zero Logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Compile tokenizes and parses src, evaluating every expression as it is
// reached. It returns the complete environment, or nil and the first error.
func Compile(ctx context.Context, src string, opts ...Option) (*Environment, error) {
	o := makeOptions(opts...)

	tokens, err := Tokenize(src)
	if err != nil {
		o.logger.TraceContext(ctx, "tokenize failed", slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "tokenize complete",
		slog.Int("source_bytes", len(src)),
		slog.Int("token_count", len(tokens)))

	env, err := newParser(tokens, o.logger).parseProgram(ctx)
	if err != nil {
		o.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("constant_count", env.Len()))

	return env, nil
}

// CompileReader reads all of r and compiles it.
func CompileReader(ctx context.Context, r io.Reader, opts ...Option) (*Environment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return Compile(ctx, string(data), opts...)
}

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Stdio is the set of standard streams a command reads and writes.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type stdioKey struct{}

// WithStdio returns a new context.Context whose commands use the given
// streams. Nil streams fall back to the process streams.
func WithStdio(ctx context.Context, stdio Stdio) context.Context {
	return context.WithValue(ctx, stdioKey{}, stdio)
}

// StdioFrom returns the streams stored by [WithStdio], with the process
// streams filling any gaps.
func StdioFrom(ctx context.Context) Stdio {
	s, _ := ctx.Value(stdioKey{}).(Stdio)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// OpenSource opens the named source for reading. "-" and the empty string
// select stdin, which is never closed.
func OpenSource(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "" || name == stdinSource {
		return io.NopCloser(StdioFrom(ctx).In), nil
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, ErrOpenSource.
			With(slog.String("file", name)).
			Wrap(err)
	}

	return file, nil
}

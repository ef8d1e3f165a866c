package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/cfglang/lang"
	"github.com/ardnew/cfglang/log"
)

// Compile compiles a document and writes its constants in the chosen format.
type Compile struct {
	Format string `default:"${formatDefault}" enum:"${formatEnum}" help:"Output format (${enum})."   short:"F"`
	Indent int    `default:"2"                                     help:"Indent width for JSON and YAML output; 0 is compact." short:"i"`
	Output string `                                                help:"Write output to file instead of stdout." short:"o" type:"path"`

	Source string `arg:"" default:"-" help:"Source file or '-' for stdin." name:"source" optional:""`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := lang.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	env, err := compileSource(ctx, c.Source)
	if err != nil {
		return err
	}

	// The output file is created only once compilation has succeeded.
	w, closeOutput, err := c.openOutput(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = ErrWriteOutput.
				With(slog.String("file", c.Output)).
				Wrap(cerr)
		}
	}()

	if err := env.Encode(ctx, w, format, c.Indent); err != nil {
		return ErrWriteOutput.
			With(slog.String("format", format.String())).
			Wrap(err)
	}

	log.DebugContext(ctx, "compiled",
		slog.String("source", c.Source),
		slog.String("format", format.String()),
		slog.Int("constants", env.Len()))

	return nil
}

// createOutput opens the named output file for writing.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func (c *Compile) openOutput(ctx context.Context) (io.Writer, func() error, error) {
	if c.Output == "" || c.Output == stdinSource {
		return StdioFrom(ctx).Out, func() error { return nil }, nil
	}

	file, err := createOutput(c.Output)
	if err != nil {
		return nil, nil, ErrWriteOutput.
			With(slog.String("file", c.Output)).
			Wrap(err)
	}

	return file, file.Close, nil
}

// compileSource opens and compiles the named source. Compile errors are
// returned as-is so they remain [lang.Error] values.
func compileSource(ctx context.Context, source string) (*lang.Environment, error) {
	r, err := OpenSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return lang.CompileReader(ctx, r, lang.WithLogger(log.Default()))
}

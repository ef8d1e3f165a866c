package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/ardnew/cfglang/lang"
)

// Tokens prints the token stream of a document, one token per line.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Source file or '-' for stdin." name:"source" optional:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	r, err := OpenSource(ctx, t.Source)
	if err != nil {
		return err
	}
	defer r.Close()

	src, err := io.ReadAll(r)
	if err != nil {
		return lang.ErrReadInput.
			With(slog.String("source", t.Source)).
			Wrap(err)
	}

	tokens, err := lang.Tokenize(string(src))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(StdioFrom(ctx).Out, 0, 4, 2, ' ', 0)

	for _, tok := range tokens {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", tok.Line, tok.Kind, tok.Lexeme)
	}

	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

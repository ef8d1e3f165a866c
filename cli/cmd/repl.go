package cmd

import (
	"context"
	"io"

	"github.com/ardnew/cfglang/cli/cmd/repl"
	"github.com/ardnew/cfglang/log"
)

// Repl starts an interactive session. Declarations extend the session
// document; other lines are evaluated as expressions over it.
type Repl struct {
	Source string `arg:"" help:"Initial source file." optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache directory undefined")
	}

	var reader io.Reader

	if r.Source != "" {
		rc, err := OpenSource(ctx, r.Source)
		if err != nil {
			return err
		}
		defer rc.Close()

		reader = rc
	}

	return repl.Run(ctx, reader, cacheDir, log.Default())
}

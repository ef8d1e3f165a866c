package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/cfglang/cli"
	"github.com/ardnew/cfglang/lang"
	"github.com/ardnew/cfglang/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err == nil {
		return
	}

	// Compile errors are reported plainly, without log decoration.
	if errors.Is(err, lang.ErrSyntax) {
		fmt.Fprintln(os.Stderr, "Syntax error: "+err.Error())
		os.Exit(1)
	}

	log.Error(
		"run failed",
		slog.Any("error", err),
	) // slog automatically uses LogValue()
	os.Exit(1)
}

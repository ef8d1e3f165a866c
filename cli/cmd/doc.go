// Package cmd implements the cfglang subcommands: compile, tokens, query,
// repl and init. The interactive shell itself lives in package repl.
//
// Every command is a kong command struct with a Run(context.Context) error
// method. Source arguments name a file, or "-" for stdin.
package cmd

import (
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cfglang/lang"
)

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)

// Vars returns the kong variables referenced by command struct tags.
func Vars() kong.Vars {
	return kong.Vars{
		"formatDefault": lang.DefaultFormat.String(),
		"formatEnum":    strings.Join(slices.Collect(lang.Formats()), ","),
	}
}

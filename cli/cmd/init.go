package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cfglang/lang"
	"github.com/ardnew/cfglang/log"
	"github.com/ardnew/cfglang/pkg"
	"github.com/ardnew/cfglang/profile"
)

// Init generates a configuration file from the current flag values. The file
// is itself a cfglang document.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	src := configSource(ktx)

	// Never write a file the resolver could not load back.
	if _, err := lang.Compile(ctx, src); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	if err := os.WriteFile(confPath, []byte(src), 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.InfoContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// configSource renders every configurable flag as a declaration. Flag
// names map to constant names by replacing '-' with '_'.
func configSource(ktx *kong.Context) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%% %s configuration\n", pkg.Name)

	ignore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		value, ok := flagValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		if flag.Help != "" {
			fmt.Fprintf(&sb, "\n%% %s\n", flag.Help)
		}

		fmt.Fprintf(&sb, "%s: %s\n", ConstantName(flag.Name), value)
	}

	return sb.String()
}

// ConstantName converts a flag name to the constant that configures it.
func ConstantName(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// flagValue converts a parsed flag value to a cfglang value. Booleans have
// no literal form and are written as text, which kong parses back.
func flagValue(v any) (lang.Value, bool) {
	switch v := v.(type) {
	case nil:
		return lang.Value{}, false

	case bool:
		return lang.NewText(strconv.FormatBool(v)), true

	case string:
		if v == "" || strings.Contains(v, "'") {
			return lang.Value{}, false
		}

		return lang.NewText(v), true

	case int:
		return lang.NewInteger(int64(v)), true

	case int64:
		return lang.NewInteger(v), true

	case []string:
		if len(v) == 0 {
			return lang.Value{}, false
		}

		items := make([]lang.Value, 0, len(v))

		for _, s := range v {
			item, ok := flagValue(s)
			if !ok {
				return lang.Value{}, false
			}

			items = append(items, item)
		}

		return lang.NewArray(items...), true

	default:
		s := fmt.Sprint(v)
		if s == "" || strings.Contains(s, "'") {
			return lang.Value{}, false
		}

		return lang.NewText(s), true
	}
}

package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cfglang/lang"
	"github.com/ardnew/cfglang/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads a configuration
// file written in cfglang.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config")
//
// Every declared constant configures the flag of the same name. Flag names
// with hyphens (e.g., "log-level") are written with underscores (e.g.
// "log_level") since hyphens cannot appear in names. Values map as follows:
//   - Integers are passed to kong as decimal strings
//   - Text is passed verbatim; booleans are written as 'true' or 'false'
//   - Arrays configure slice flags
//   - Dictionaries configure map flags
//
// Example configuration file:
//
//	log_level: 'debug'
//	log_format: 'json'
//	log_pretty: 'false'
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--no-log-pretty
//
// Command-line flags override config file values. A file that does not
// compile is logged and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		env, err := lang.CompileReader(ctx, r, lang.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file", slog.Any("error", err))

			return fileConfig{}, nil
		}

		return makeFileConfig(env), nil
	}
}

// fileConfig implements [kong.Resolver] for a compiled configuration file.
type fileConfig map[string]any

func makeFileConfig(env *lang.Environment) fileConfig {
	config := make(fileConfig, env.Len())

	for name, value := range env.All() {
		config[name] = flagNative(value)
	}

	return config
}

// flagNative converts a value to the form kong's mappers decode. Top-level
// integers become strings; composite values keep their native form, which
// kong decodes the same way as JSON configuration.
func flagNative(v lang.Value) any {
	if v.Type == lang.TypeInteger {
		return strconv.FormatInt(v.Integer, 10)
	}

	return v.ToNative()
}

// Validate implements [kong.Resolver].
func (fileConfig) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (c fileConfig) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if value, ok := c[name]; ok {
			return value, nil
		}
	}

	// Not found; kong falls back to the default.
	return nil, nil
}

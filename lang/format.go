package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ardnew/mung"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format selects the output representation of an [Environment].
type Format int

const (
	FormatTOML   Format = iota // toml
	FormatJSON                 // json
	FormatYAML                 // yaml
	FormatEnv                  // env
	FormatNative               // native
)

// DefaultFormat is the format used when none is given.
const DefaultFormat = FormatTOML

// Formats returns an iterator over all format names.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for f := FormatTOML; f <= FormatNative; f++ {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a format name, ignoring case and surrounding space.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for f := FormatTOML; f <= FormatNative; f++ {
		if f.String() == name {
			return f, nil
		}
	}

	return DefaultFormat, ErrInvalidFormat.With(slog.String("format", s))
}

// Encode writes env to w in the given format. indent applies to JSON and
// YAML; zero selects the compact form.
func (env *Environment) Encode(
	ctx context.Context,
	w io.Writer,
	format Format,
	indent int,
) error {
	var err error

	switch format {
	case FormatTOML:
		err = env.FormatTOML(ctx, w)
	case FormatJSON:
		err = env.FormatJSON(ctx, w, indent)
	case FormatYAML:
		err = env.FormatYAML(ctx, w, indent)
	case FormatEnv:
		err = env.FormatEnv(ctx, w)
	case FormatNative:
		err = env.Format(ctx, w)
	default:
		return ErrInvalidFormat.With(slog.Int("format", int(format)))
	}

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", format.String()))
	}

	return nil
}

// FormatTOML writes env as TOML, one key per constant in document order.
// Arrays are written inline and dictionaries are inline tables whose keys
// keep their source order.
func (env *Environment) FormatTOML(_ context.Context, w io.Writer) error {
	for name, value := range env.All() {
		text, err := tomlValue(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if _, err := fmt.Fprintf(w, "%s = %s\n", name, text); err != nil {
			return err
		}
	}

	return nil
}

// tomlValue renders v as an inline TOML value. Names are always valid bare
// keys, so only scalars need the encoder.
func tomlValue(v Value) (string, error) {
	switch v.Type {
	case TypeArray:
		parts := make([]string, 0, len(v.Items))

		for _, item := range v.Items {
			s, err := tomlValue(item)
			if err != nil {
				return "", err
			}

			parts = append(parts, s)
		}

		return "[" + strings.Join(parts, ", ") + "]", nil

	case TypeDict:
		parts := make([]string, 0, len(v.Entries))

		for _, e := range v.Entries {
			s, err := tomlScalar(e.Value)
			if err != nil {
				return "", err
			}

			parts = append(parts, e.Key+" = "+s)
		}

		return "{" + strings.Join(parts, ", ") + "}", nil

	default:
		return tomlScalar(v.ToNative())
	}
}

// tomlScalarKey is the placeholder key used to encode a lone scalar.
const tomlScalarKey = "v"

// tomlScalar encodes an integer or string with go-toml and returns the
// value part of the resulting key/value line.
func tomlScalar(x any) (string, error) {
	data, err := toml.Marshal(map[string]any{tomlScalarKey: x})
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(string(data))

	return strings.TrimPrefix(line, tomlScalarKey+" = "), nil
}

// MarshalJSON implements json.Marshaler for Environment.
func (env *Environment) MarshalJSON() ([]byte, error) {
	return json.Marshal(env.ToMap())
}

// FormatJSON writes env as JSON to the writer.
func (env *Environment) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(env, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(env)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes env as YAML to the writer, keeping document order for
// constants and dictionary keys.
func (env *Environment) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	doc := make(yaml.MapSlice, 0, env.Len())
	for name, value := range env.All() {
		doc = append(doc, yaml.MapItem{Key: name, Value: yamlValue(value)})
	}

	yamlData, err := yaml.MarshalContext(ctx, doc, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

func yamlValue(v Value) any {
	switch v.Type {
	case TypeArray:
		items := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, yamlValue(item))
		}

		return items

	case TypeDict:
		entries := make(yaml.MapSlice, 0, len(v.Entries))
		for _, e := range v.Entries {
			entries = append(entries, yaml.MapItem{Key: e.Key, Value: e.Value})
		}

		return entries

	default:
		return v.ToNative()
	}
}

// FormatEnv writes env as POSIX shell export statements. Arrays of scalars
// are joined with the OS path-list separator; dictionary entries become
// NAME_KEY variables.
func (env *Environment) FormatEnv(_ context.Context, w io.Writer) error {
	for name, value := range env.All() {
		lines, err := envLines(name, value)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	return nil
}

func envLines(name string, v Value) ([]string, error) {
	switch v.Type {
	case TypeInteger:
		return []string{exportLine(name, strconv.FormatInt(v.Integer, 10))}, nil

	case TypeText:
		return []string{exportLine(name, v.Text)}, nil

	case TypeArray:
		items := make([]string, 0, len(v.Items))

		for _, item := range v.Items {
			switch item.Type {
			case TypeInteger:
				items = append(items, strconv.FormatInt(item.Integer, 10))
			case TypeText:
				items = append(items, item.Text)
			default:
				return nil, fmt.Errorf("%s: cannot export nested %s", name, item.Type)
			}
		}

		joined := mung.Make(
			mung.WithSubjectItems(items...),
			mung.WithDelim(string(os.PathListSeparator)),
		).String()

		return []string{exportLine(name, joined)}, nil

	case TypeDict:
		lines := make([]string, 0, len(v.Entries))
		for _, e := range v.Entries {
			lines = append(lines, exportLine(name+"_"+e.Key, e.Value))
		}

		return lines, nil

	default:
		return nil, fmt.Errorf("%s: unknown value type", name)
	}
}

// exportLine single-quotes value for the shell. Text values never contain a
// single quote, so no escaping is needed.
func exportLine(name, value string) string {
	return "export " + name + "='" + value + "'"
}

// Format writes env in cfglang source syntax, one declaration per line.
// The output compiles back to an equal environment.
func (env *Environment) Format(_ context.Context, w io.Writer) error {
	for name, value := range env.All() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, value); err != nil {
			return err
		}
	}

	return nil
}

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/cfglang/lang"
)

// stdio returns a context whose commands read in and write to the returned
// buffer.
func stdio(t *testing.T, in string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithStdio(t.Context(), Stdio{
		In:  strings.NewReader(in),
		Out: &out,
		Err: io.Discard,
	})

	return ctx, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestStdioFrom_Defaults(t *testing.T) {
	s := StdioFrom(context.Background())

	if s.In != os.Stdin || s.Out != os.Stdout || s.Err != os.Stderr {
		t.Error("StdioFrom without WithStdio did not return process streams")
	}

	var buf bytes.Buffer

	s = StdioFrom(WithStdio(context.Background(), Stdio{Out: &buf}))
	if s.Out != &buf {
		t.Error("Out not taken from context")
	}

	if s.In != os.Stdin {
		t.Error("nil In did not fall back to os.Stdin")
	}
}

func TestOpenSource(t *testing.T) {
	ctx, _ := stdio(t, "from stdin")

	for _, name := range []string{"", "-"} {
		r, err := OpenSource(ctx, name)
		if err != nil {
			t.Fatalf("OpenSource(%q): %v", name, err)
		}

		data, _ := io.ReadAll(r)
		_ = r.Close()

		if name == "" && string(data) != "from stdin" {
			t.Errorf("OpenSource(%q) read %q", name, data)
		}
	}

	path := writeFile(t, "doc.cfg", "a: 1")

	r, err := OpenSource(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if data, _ := io.ReadAll(r); string(data) != "a: 1" {
		t.Errorf("read %q", data)
	}

	_, err = OpenSource(ctx, filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("missing file error = %v, want ErrOpenSource", err)
	}

	if errors.Is(err, lang.ErrSyntax) {
		t.Error("open error matches ErrSyntax")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"msg only", NewError("oops"), "oops"},
		{"wrapped", NewError("oops").Wrap(errors.New("cause")), "oops: cause"},
		{"cause only", NewError("").Wrap(errors.New("cause")), "cause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrWriteConfig.Wrap(cause)

	if !errors.Is(err, ErrWriteConfig) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(err, ErrWriteOutput) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("derived error does not unwrap to its cause")
	}
}

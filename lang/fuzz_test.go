package lang

import (
	"bytes"
	"errors"
	"testing"
	"unicode/utf8"
)

var fuzzSeeds = []string{
	"",
	"port: 8080",
	"s: 'text with % and (comment)'",
	"a: << 1, 'two', << >> >>",
	"d: [ k ['v'] k ['w'] ]",
	"n: 3\nm: ?[len xs]",
	"xs: << 1 2 >>\nn: ?[len xs * 2 + 1]",
	"n: ?[7 0 /]",
	"n: ?[9223372036854775807 1 +]",
	"% comment\n(block\ncomment)x: 1",
	"(unclosed",
	"s: 'unterminated",
	"x: ?[1 2 +",
	"x 1",
}

// FuzzTokenize checks that the lexer never panics and that every failure
// is a syntax error.
func FuzzTokenize(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tokens, err := Tokenize(input)
		if err != nil {
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("Tokenize(%q) error %v does not match ErrSyntax", input, err)
			}

			return
		}

		line := 1

		for _, tok := range tokens {
			if tok.Kind.isComment() {
				t.Errorf("comment token %v reached the output", tok)
			}

			if tok.Line < line {
				t.Errorf("token %v goes back from line %d", tok, line)
			}

			line = tok.Line
		}
	})
}

// FuzzCompile checks that compilation never panics, that failures are
// syntax errors, and that successful output survives a round trip through
// the native format.
func FuzzCompile(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		env, err := Compile(t.Context(), input)
		if err != nil {
			if env != nil {
				t.Fatal("environment returned with error")
			}

			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("Compile(%q) error %v does not match ErrSyntax", input, err)
			}

			return
		}

		var buf bytes.Buffer
		if err := env.Format(t.Context(), &buf); err != nil {
			t.Fatal(err)
		}

		again, err := Compile(t.Context(), buf.String())
		if err != nil {
			t.Fatalf("native output of %q does not compile: %v\n%s", input, err, buf.String())
		}

		if !env.Equal(again) {
			t.Errorf("round trip of %q changed the environment:\n%s", input, buf.String())
		}
	})
}

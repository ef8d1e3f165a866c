package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: " \t\r\n\n",
			want:  nil,
		},
		{
			name:  "number declaration",
			input: "port: 8080",
			want: []Token{
				{KindName, "port", 1},
				{KindConstDecl, ":", 1},
				{KindNumber, "8080", 1},
			},
		},
		{
			name:  "array",
			input: "hosts: << 'a', 'b c' >>",
			want: []Token{
				{KindName, "hosts", 1},
				{KindConstDecl, ":", 1},
				{KindArrayStart, "<<", 1},
				{KindString, "'a'", 1},
				{KindComma, ",", 1},
				{KindString, "'b c'", 1},
				{KindArrayEnd, ">>", 1},
			},
		},
		{
			name:  "dictionary",
			input: "d: [ k ['v'] ]",
			want: []Token{
				{KindName, "d", 1},
				{KindConstDecl, ":", 1},
				{KindDictStart, "[", 1},
				{KindName, "k", 1},
				{KindDictStart, "[", 1},
				{KindString, "'v'", 1},
				{KindBracketEnd, "]", 1},
				{KindBracketEnd, "]", 1},
			},
		},
		{
			name:  "expression",
			input: "n: ?[len xs 2 * - 1 +]",
			want: []Token{
				{KindName, "n", 1},
				{KindConstDecl, ":", 1},
				{KindExprStart, "?[", 1},
				{KindFunc, "len", 1},
				{KindName, "xs", 1},
				{KindNumber, "2", 1},
				{KindOperator, "*", 1},
				{KindOperator, "-", 1},
				{KindNumber, "1", 1},
				{KindOperator, "+", 1},
				{KindExprEnd, "]", 1},
			},
		},
		{
			name:  "names with digits and underscores",
			input: "log_level2 lenx Len",
			want: []Token{
				{KindName, "log_level2", 1},
				{KindName, "lenx", 1},
				{KindName, "Len", 1},
			},
		},
		{
			name:  "adjacent tokens without space",
			input: "a:1b:'x'",
			want: []Token{
				{KindName, "a", 1},
				{KindConstDecl, ":", 1},
				{KindNumber, "1", 1},
				{KindName, "b", 1},
				{KindConstDecl, ":", 1},
				{KindString, "'x'", 1},
			},
		},
		{
			name:  "string keeps percent and parens verbatim",
			input: "s: '50% (comment) \"q\"'",
			want: []Token{
				{KindName, "s", 1},
				{KindConstDecl, ":", 1},
				{KindString, `'50% (comment) "q"'`, 1},
			},
		},
		{
			name:  "line comment",
			input: "% header\nx: 1 % trailing\ny: 2",
			want: []Token{
				{KindName, "x", 2},
				{KindConstDecl, ":", 2},
				{KindNumber, "1", 2},
				{KindName, "y", 3},
				{KindConstDecl, ":", 3},
				{KindNumber, "2", 3},
			},
		},
		{
			name:  "block comment spans lines",
			input: "(comment first\nsecond: <<\n)x: 1",
			want: []Token{
				{KindName, "x", 3},
				{KindConstDecl, ":", 3},
				{KindNumber, "1", 3},
			},
		},
		{
			name:  "string spans lines",
			input: "s: 'a\nb'\nt: 1",
			want: []Token{
				{KindName, "s", 1},
				{KindConstDecl, ":", 1},
				{KindString, "'a\nb'", 1},
				{KindName, "t", 3},
				{KindConstDecl, ":", 3},
				{KindNumber, "1", 3},
			},
		},
		{
			name:  "crlf line endings",
			input: "x: 1\r\ny: 2\r\n",
			want: []Token{
				{KindName, "x", 1},
				{KindConstDecl, ":", 1},
				{KindNumber, "1", 1},
				{KindName, "y", 2},
				{KindConstDecl, ":", 2},
				{KindNumber, "2", 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       *Error
		wantLine   int
		wantLexeme string
	}{
		{"unexpected char", "x: 1\ny: @", ErrUnexpectedChar, 2, "@"},
		{"unexpected unicode", "é: 1", ErrUnexpectedChar, 1, "é"},
		{"lone question mark", "x: ?", ErrUnexpectedChar, 1, "?"},
		{"lone angle", "x: < 1", ErrUnexpectedChar, 1, "<"},
		{"open paren", "x: (1)", ErrUnexpectedChar, 1, "("},
		{"unclosed comment", "x: 1\n(comment never\nclosed", ErrUnclosedComment, 2, "(comment"},
		{"unterminated string", "x: 1\ns: 'open\nmore", ErrUnterminatedString, 2, "'open"},
		{"lone quote", "x: '", ErrUnterminatedString, 1, "'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if tokens != nil {
				t.Errorf("Tokenize() returned tokens on error: %v", tokens)
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("Tokenize() error = %v, want %v", err, tt.want)
			}

			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v does not match ErrSyntax", err)
			}

			var le *Error
			if !errors.As(err, &le) {
				t.Fatalf("error %T is not *Error", err)
			}

			if le.Line() != tt.wantLine || le.Lexeme() != tt.wantLexeme {
				t.Errorf("located at line %d %q, want line %d %q",
					le.Line(), le.Lexeme(), tt.wantLine, tt.wantLexeme)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	tok := Token{Kind: KindString, Lexeme: "'hi'", Line: 3}

	if got, want := tok.String(), `3:string "'hi'"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func BenchmarkTokenize(b *testing.B) {
	var sb strings.Builder

	for i := range 200 {
		sb.WriteString("% entry\n")
		sb.WriteString("n")
		sb.WriteString(strings.Repeat("x", i%7+1))
		sb.WriteString("_")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteString(": << 'alpha', 'beta', 42 >>\n")
	}

	src := sb.String()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Tokenize(src); err != nil {
			b.Fatal(err)
		}
	}
}

package lang

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scopeOf builds an environment from name/value pairs.
func scopeOf(t testing.TB, pairs ...any) *Environment {
	t.Helper()

	env := NewEnvironment()

	for i := 0; i+1 < len(pairs); i += 2 {
		if err := env.define(pairs[i].(string), pairs[i+1].(Value)); err != nil {
			t.Fatal(err)
		}
	}

	return env
}

func TestToRPN(t *testing.T) {
	scope := scopeOf(t,
		"hosts", NewArray(NewText("a"), NewText("b")),
		"port", NewInteger(8080),
	)

	tests := []struct {
		infix string
		want  string
	}{
		{"1 + 2 * 3", "1 2 3 * +"},
		{"1 * 2 + 3", "1 2 * 3 +"},
		{"8 - 2 - 1", "8 2 - 1 -"},
		{"10 / 2 * 3", "10 2 / 3 *"},
		{"1 2 3 * +", "1 2 3 * +"},
		{"1 2 + 3 *", "1 2 3 * +"},
		{"port 1 +", "8080 1 +"},
		{"len hosts", "<< 'a', 'b' >> len"},
		{"len hosts * 2", "<< 'a', 'b' >> len 2 *"},
		{"port + len hosts", "8080 << 'a', 'b' >> len +"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.infix, func(t *testing.T) {
			rpn, err := ToRPN(strings.Fields(tt.infix), scope)
			if err != nil {
				t.Fatalf("ToRPN() error = %v", err)
			}

			if got := rpn.String(); got != tt.want {
				t.Errorf("ToRPN(%q) = %q, want %q", tt.infix, got, tt.want)
			}
		})
	}
}

func TestToRPN_Errors(t *testing.T) {
	tests := []struct {
		name    string
		lexemes []string
		want    *Error
	}{
		{"undefined name", []string{"missing"}, ErrUndefinedName},
		{"overflowing literal", []string{"99999999999999999999"}, ErrIntegerOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpn, err := ToRPN(tt.lexemes, nil)
			if rpn != nil {
				t.Errorf("ToRPN() = %v, want nil", rpn)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("ToRPN() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	scope := scopeOf(t,
		"base", NewInteger(10),
		"name", NewText("héllo"),
		"hosts", NewArray(NewText("a"), NewText("b"), NewText("c")),
		"nested", NewArray(NewArray(), NewArray(NewInteger(1))),
		"neg", NewInteger(-7),
	)

	tests := []struct {
		expr string
		want Value
	}{
		{"10 5 +", NewInteger(15)},
		{"base + 5 * base", NewInteger(60)},
		{"7 2 /", NewInteger(3)},
		{"neg 2 /", NewInteger(-3)},
		{"0 - 7 / 2", NewInteger(-3)},
		{"1 2 + 3 *", NewInteger(7)},
		{"0 - 9223372036854775807 - 1", NewInteger(math.MinInt64)},
		{"1 5 -", NewInteger(-4)},
		{"len hosts", NewInteger(3)},
		{"len name", NewInteger(5)},
		{"len nested", NewInteger(2)},
		{"len hosts + len name", NewInteger(8)},
		{"hosts", NewArray(NewText("a"), NewText("b"), NewText("c"))},
		{"name", NewText("héllo")},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(strings.Fields(tt.expr), scope.View())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Evaluate(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	scope := scopeOf(t,
		"n", NewInteger(3),
		"s", NewText("x"),
		"d", NewDict(Entry{"k", "v"}),
	)

	tests := []struct {
		expr string
		want *Error
	}{
		{"", ErrInvalidExpression},
		{"+", ErrInvalidExpression},
		{"1 +", ErrInvalidExpression},
		{"1 2", ErrInvalidExpression},
		{"len", ErrInvalidExpression},
		{"len n", ErrLenOperand},
		{"len d", ErrLenOperand},
		{"s 1 +", ErrNotInteger},
		{"1 d *", ErrNotInteger},
		{"n 0 /", ErrDivisionByZero},
		{"undefined 1 +", ErrUndefinedName},
		{"9223372036854775807 1 +", ErrIntegerOverflow},
		{"0 - 9223372036854775807 - 2", ErrIntegerOverflow},
		{"3037000500 3037000500 *", ErrIntegerOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(strings.Fields(tt.expr), scope)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Evaluate(%q) = %v, %v; want %v", tt.expr, got, err, tt.want)
			}

			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v does not match ErrSyntax", err)
			}
		})
	}
}

func TestRPN_Eval_Bounds(t *testing.T) {
	minInt := NewInteger(math.MinInt64)
	negOne := NewInteger(-1)

	tests := []struct {
		name    string
		rpn     RPN
		want    Value
		wantErr *Error
	}{
		{
			name: "min int from literals",
			rpn:  mustRPN(t, "0 - 9223372036854775807 - 1"),
			want: minInt,
		},
		{
			name:    "min int divided by minus one",
			rpn:     RPN{{Operand: minInt}, {Operand: negOne}, {Op: "/"}},
			wantErr: ErrIntegerOverflow,
		},
		{
			name:    "min int times minus one",
			rpn:     RPN{{Operand: minInt}, {Operand: negOne}, {Op: "*"}},
			wantErr: ErrIntegerOverflow,
		},
		{
			name:    "minus one times min int",
			rpn:     RPN{{Operand: negOne}, {Operand: minInt}, {Op: "*"}},
			wantErr: ErrIntegerOverflow,
		},
		{
			name: "negative divisor truncates toward zero",
			rpn:  RPN{{Operand: NewInteger(7)}, {Operand: NewInteger(-2)}, {Op: "/"}},
			want: NewInteger(-3),
		},
		{
			name: "max int minus negative one overflows",
			rpn: RPN{
				{Operand: NewInteger(math.MaxInt64)},
				{Operand: negOne},
				{Op: "-"},
			},
			wantErr: ErrIntegerOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rpn.Eval()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Eval() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func mustRPN(t *testing.T, expr string) RPN {
	t.Helper()

	rpn, err := ToRPN(strings.Fields(expr), nil)
	if err != nil {
		t.Fatal(err)
	}

	return rpn
}

func TestEvaluate_Suggestions(t *testing.T) {
	scope := scopeOf(t,
		"port", NewInteger(1),
		"host", NewText("h"),
	)

	_, err := Evaluate([]string{"prt"}, scope)
	if !errors.Is(err, ErrUndefinedName) {
		t.Fatalf("error = %v, want ErrUndefinedName", err)
	}

	if got, want := err.Error(), "undefined name 'prt': did you mean 'port'?"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	_, err = Evaluate([]string{"zzz"}, scope)
	if got, want := err.Error(), "undefined name 'zzz'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEvaluate_SuggestionLimit(t *testing.T) {
	pairs := make([]any, 0, 10)
	for i := range 5 {
		pairs = append(pairs, "item"+strconv.Itoa(i), NewInteger(int64(i)))
	}

	_, err := Evaluate([]string{"itm"}, scopeOf(t, pairs...))
	if err == nil {
		t.Fatal("expected error")
	}

	if n := strings.Count(err.Error(), "'item"); n != maxSuggestions {
		t.Errorf("suggestions = %d, want %d: %v", n, maxSuggestions, err)
	}
}

func TestEvaluate_ViewHidesLaterNames(t *testing.T) {
	env := scopeOf(t, "a", NewInteger(1))
	view := env.View()

	if err := env.define("b", NewInteger(2)); err != nil {
		t.Fatal(err)
	}

	if _, err := Evaluate([]string{"b"}, view); !errors.Is(err, ErrUndefinedName) {
		t.Errorf("Evaluate(b) through earlier view error = %v, want ErrUndefinedName", err)
	}

	got, err := Evaluate([]string{"a", "b", "+"}, env.View())
	if err != nil {
		t.Fatal(err)
	}

	if !got.Equal(NewInteger(3)) {
		t.Errorf("a + b = %v, want 3", got)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	scope := scopeOf(b,
		"base", NewInteger(10),
		"hosts", NewArray(NewText("a"), NewText("b")),
	)
	lexemes := strings.Fields("base + 2 * 3 - len hosts / 2")

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Evaluate(lexemes, scope.View()); err != nil {
			b.Fatal(err)
		}
	}
}

package lang

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" candidates on undefined names.
const maxSuggestions = 3

// operator describes a stackable operator in an expression.
type operator struct {
	lexeme string
	prec   int
	unary  bool
}

// Operators by lexeme. len binds tighter than any binary operator; all
// binary operators are left-associative.
var operators = map[string]operator{
	"+":     {lexeme: "+", prec: 1},
	"-":     {lexeme: "-", prec: 1},
	"*":     {lexeme: "*", prec: 2},
	"/":     {lexeme: "/", prec: 2},
	funcLen: {lexeme: funcLen, prec: 3, unary: true},
}

// Step is one element of an expression in reverse Polish notation: either
// an operand or an operator.
type Step struct {
	Operand Value
	Op      string // Empty for operands
}

// RPN is an expression in reverse Polish notation.
type RPN []Step

// String returns the steps separated by spaces, with operands in source
// syntax.
func (r RPN) String() string {
	parts := make([]string, 0, len(r))

	for _, s := range r {
		if s.Op != "" {
			parts = append(parts, s.Op)
		} else {
			parts = append(parts, s.Operand.String())
		}
	}

	return strings.Join(parts, " ")
}

// ToRPN converts an infix sequence of lexemes to reverse Polish notation.
// Postfix input with a single operator passes through unchanged; with more
// than one, operators are still reordered by precedence, so "1 2 + 3 *"
// means 1 + 2 * 3. Integer literals become operands and names are
// resolved through scope.
func ToRPN(lexemes []string, scope Scope) (RPN, error) {
	var (
		output RPN
		stack  []operator
	)

	for _, lexeme := range lexemes {
		if op, ok := operators[lexeme]; ok {
			if !op.unary {
				for len(stack) > 0 && stack[len(stack)-1].prec >= op.prec {
					output = append(output, Step{Op: stack[len(stack)-1].lexeme})
					stack = stack[:len(stack)-1]
				}
			}

			stack = append(stack, op)

			continue
		}

		operand, err := resolveOperand(lexeme, scope)
		if err != nil {
			return nil, err
		}

		output = append(output, Step{Operand: operand})
	}

	for i := len(stack) - 1; i >= 0; i-- {
		output = append(output, Step{Op: stack[i].lexeme})
	}

	return output, nil
}

// resolveOperand turns a literal or a name into a value.
func resolveOperand(lexeme string, scope Scope) (Value, error) {
	if lexeme != "" && isDigit(lexeme[0]) {
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return Value{}, ErrIntegerOverflow.At(0, lexeme)
		}

		return NewInteger(n), nil
	}

	if scope != nil {
		if v, ok := scope.Lookup(lexeme); ok {
			return v, nil
		}
	}

	return Value{}, undefinedName(lexeme, scope)
}

// undefinedName builds an ErrUndefinedName error with suggestions ranked by
// fuzzy match against the visible names.
func undefinedName(name string, scope Scope) *Error {
	err := ErrUndefinedName.At(0, name)
	if scope == nil {
		return err
	}

	names := slices.Collect(scope.Names())

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return err
	}

	suggest := make([]string, 0, maxSuggestions)
	for _, m := range matches[:min(len(matches), maxSuggestions)] {
		suggest = append(suggest, "'"+m.Str+"'")
	}

	return err.
		With(slog.Any("suggestions", suggest)).
		Wrap(NewError("did you mean " + strings.Join(suggest, " or ") + "?"))
}

// Eval runs the expression on a value stack. Exactly one value must remain.
func (r RPN) Eval() (Value, error) {
	stack := make([]Value, 0, len(r))

	pop := func(op string) (Value, error) {
		if len(stack) == 0 {
			return Value{}, ErrInvalidExpression.At(0, op).
				With(slog.String("reason", "missing operand"))
		}

		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return v, nil
	}

	for _, step := range r {
		if step.Op == "" {
			stack = append(stack, step.Operand)

			continue
		}

		if step.Op == funcLen {
			v, err := pop(step.Op)
			if err != nil {
				return Value{}, err
			}

			n, ok := v.Len()
			if !ok {
				return Value{}, ErrLenOperand.At(0, v.String()).
					With(slog.String("type", v.Type.String()))
			}

			stack = append(stack, NewInteger(int64(n)))

			continue
		}

		b, err := pop(step.Op)
		if err != nil {
			return Value{}, err
		}

		a, err := pop(step.Op)
		if err != nil {
			return Value{}, err
		}

		result, err := arith(step.Op, a, b)
		if err != nil {
			return Value{}, err
		}

		stack = append(stack, result)
	}

	if len(stack) != 1 {
		return Value{}, ErrInvalidExpression.
			At(0, r.String()).
			With(slog.Int("stack_depth", len(stack)))
	}

	return stack[0], nil
}

// arith applies a binary operator to two integers. Division truncates
// toward zero.
func arith(op string, a, b Value) (Value, error) {
	for _, v := range []Value{a, b} {
		if v.Type != TypeInteger {
			return Value{}, ErrNotInteger.At(0, v.String()).
				With(slog.String("operator", op), slog.String("type", v.Type.String()))
		}
	}

	x, y := a.Integer, b.Integer
	overflow := ErrIntegerOverflow.At(0, strconv.FormatInt(x, 10)+" "+op+" "+strconv.FormatInt(y, 10))

	switch op {
	case "+":
		if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
			return Value{}, overflow
		}

		return NewInteger(x + y), nil

	case "-":
		if (y < 0 && x > math.MaxInt64+y) || (y > 0 && x < math.MinInt64+y) {
			return Value{}, overflow
		}

		return NewInteger(x - y), nil

	case "*":
		if x != 0 && y != 0 {
			p := x * y
			if p/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
				return Value{}, overflow
			}
		}

		return NewInteger(x * y), nil

	case "/":
		if y == 0 {
			return Value{}, ErrDivisionByZero.At(0, strconv.FormatInt(x, 10)+" / 0")
		}

		if x == math.MinInt64 && y == -1 {
			return Value{}, overflow
		}

		return NewInteger(x / y), nil

	default:
		return Value{}, ErrInvalidExpression.At(0, op)
	}
}

// Evaluate converts lexemes to reverse Polish notation and evaluates them
// against scope. scope is never modified.
func Evaluate(lexemes []string, scope Scope) (Value, error) {
	rpn, err := ToRPN(lexemes, scope)
	if err != nil {
		return Value{}, err
	}

	return rpn.Eval()
}

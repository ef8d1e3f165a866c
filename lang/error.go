package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// ErrSyntax is the root of every error produced while compiling a source.
// All lexical, structural and evaluation errors match it via [errors.Is].
var ErrSyntax = newSyntaxError("syntax error")

// Lexical errors.
var (
	ErrUnexpectedChar     = newSyntaxError("unexpected character")
	ErrUnclosedComment    = newSyntaxError("unclosed multi-line comment")
	ErrUnterminatedString = newSyntaxError("unterminated string literal")
)

// Structural errors.
var (
	ErrUnexpectedEOF     = newSyntaxError("unexpected end of input")
	ErrExpectedName      = newSyntaxError("expected a name")
	ErrExpectedConstDecl = newSyntaxError("expected ':'")
	ErrAlreadyDeclared   = newSyntaxError("constant already declared")
	ErrUnexpectedValue   = newSyntaxError("unexpected value")
	ErrUnclosedArray     = newSyntaxError("expected '>>' to close array")
	ErrUnclosedDict      = newSyntaxError("expected ']' to close dictionary")
	ErrDictToken         = newSyntaxError("unexpected token in dictionary")
	ErrDictOpen          = newSyntaxError("expected '[' after key")
	ErrDictValue         = newSyntaxError("expected string value for dictionary")
	ErrDictClose         = newSyntaxError("expected ']' to close key-value pair")
	ErrExprToken         = newSyntaxError("unexpected token in expression")
	ErrUnclosedExpr      = newSyntaxError("expected ']' to close expression")
)

// Evaluation errors.
var (
	ErrUndefinedName     = newSyntaxError("undefined name")
	ErrLenOperand        = newSyntaxError("len requires an array or string")
	ErrNotInteger        = newSyntaxError("operand is not an integer")
	ErrDivisionByZero    = newSyntaxError("division by zero")
	ErrIntegerOverflow   = newSyntaxError("integer overflow")
	ErrInvalidExpression = newSyntaxError("invalid expression")
)

// Errors outside the compiler proper. These do not match ErrSyntax.
var (
	ErrReadInput     = NewError("failed to read input")
	ErrInvalidFormat = NewError("invalid format")
	ErrEncode        = NewError("encode failed")
)

// Error represents a compile error with an optional source location and
// structured logging attributes. It implements both error and
// slog.LogValuer interfaces.
type Error struct {
	msg    string
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
	kind   *Error      // Sentinel this error was derived from
	lexeme string
	line   int
	quoted bool // lexeme is set (it may be empty)
	syntax bool
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

func newSyntaxError(msg string) *Error {
	e := NewError(msg)
	e.syntax = true

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	e := &Error{err: err}
	e.kind = e

	return e
}

// Error implements the error interface.
//
// The message has the form "<msg> '<lexeme>' at line <n>: <err>", where
// each part is omitted when unset.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	if e.quoted {
		sb.WriteString(" '")
		sb.WriteString(e.lexeme)
		sb.WriteString("'")
	}

	if e.line > 0 {
		sb.WriteString(" at line ")
		sb.WriteString(strconv.Itoa(e.line))
	}

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	return strings.TrimSpace(sb.String())
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from, or
// [ErrSyntax] when e is a compile error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t == e.kind || (t == ErrSyntax && e.syntax)
}

// Line returns the 1-based source line, or 0 when unknown.
func (e *Error) Line() int { return e.line }

// Lexeme returns the offending lexeme, if any.
func (e *Error) Lexeme() string { return e.lexeme }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.quoted {
		attrs = append(attrs, slog.String("lexeme", e.lexeme))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.Int("line", e.line))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// At returns a copy of e located at the given line and lexeme.
func (e *Error) At(line int, lexeme string) *Error {
	c := e.clone()
	c.line = line
	c.lexeme = lexeme
	c.quoted = true

	return c
}

// AtLine returns a copy of e located at line, unless e already has one.
func (e *Error) AtLine(line int) *Error {
	if e.line > 0 {
		return e
	}

	c := e.clone()
	c.line = line

	return c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// clone returns a shallow copy that shares attrs with e.
func (e *Error) clone() *Error {
	c := *e

	return &c
}

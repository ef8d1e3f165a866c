package repl

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/cfglang/lang"
	"github.com/ardnew/cfglang/log"
)

// Session is the document under construction in a REPL. Each accepted
// declaration is appended to the source, and the whole source is recompiled
// so the environment always matches what a file with the same text would
// produce.
type Session struct {
	source string
	env    *lang.Environment
	logger log.Logger
}

// NewSession compiles the initial document read from r. A nil reader starts
// an empty session.
func NewSession(ctx context.Context, r io.Reader, logger log.Logger) (*Session, error) {
	s := &Session{env: lang.NewEnvironment(), logger: logger}

	if r == nil {
		return s, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, lang.ErrReadInput.Wrap(err)
	}

	env, err := lang.Compile(ctx, string(data), lang.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	s.source = strings.TrimRight(string(data), "\n")
	s.env = env

	return s, nil
}

// Env returns the environment compiled from the current document.
func (s *Session) Env() *lang.Environment { return s.env }

// Source returns the current document text.
func (s *Session) Source() string { return s.source }

// Reset discards every declaration.
func (s *Session) Reset() {
	s.source = ""
	s.env = lang.NewEnvironment()
}

// IsDeclaration reports whether line starts with "Name ':'".
func IsDeclaration(line string) bool {
	tokens, err := lang.Tokenize(line)
	if err != nil || len(tokens) < 2 {
		return false
	}

	return tokens[0].Kind == lang.KindName && tokens[1].Kind == lang.KindConstDecl
}

// Declare appends line to the document and recompiles it. On failure the
// session is left unchanged.
func (s *Session) Declare(ctx context.Context, line string) ([]string, error) {
	source := line
	if s.source != "" {
		source = s.source + "\n" + line
	}

	env, err := lang.Compile(ctx, source, lang.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	added := make([]string, 0, env.Len()-s.env.Len())

	for name := range env.Names() {
		if _, ok := s.env.Lookup(name); !ok {
			added = append(added, name)
		}
	}

	s.source = source
	s.env = env

	s.logger.TraceContext(ctx, "repl declare",
		slog.Any("added", added),
		slog.Int("constant_count", env.Len()))

	return added, nil
}

// Eval evaluates line as an expression over every declared constant. The
// line is the body of an expression, optionally wrapped in "?[" and "]".
func (s *Session) Eval(line string) (lang.Value, error) {
	tokens, err := lang.Tokenize(line)
	if err != nil {
		return lang.Value{}, err
	}

	if n := len(tokens); n >= 2 &&
		tokens[0].Kind == lang.KindExprStart && tokens[n-1].Kind == lang.KindExprEnd {
		tokens = tokens[1 : n-1]
	}

	lexemes := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		switch tok.Kind {
		case lang.KindNumber, lang.KindName, lang.KindOperator, lang.KindFunc:
			lexemes = append(lexemes, tok.Lexeme)
		default:
			return lang.Value{}, lang.ErrExprToken.At(tok.Line, tok.Lexeme)
		}
	}

	if len(lexemes) == 0 {
		return lang.Value{}, lang.ErrInvalidExpression.AtLine(1)
	}

	return lang.Evaluate(lexemes, s.env.View())
}

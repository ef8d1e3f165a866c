package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/cfglang/log"
)

// parser holds the parser state: the complete token slice, a cursor, and
// the environment being built.
type parser struct {
	tokens []Token
	pos    int
	env    *Environment
	logger log.Logger
}

func newParser(tokens []Token, logger log.Logger) *parser {
	return &parser{
		tokens: tokens,
		env:    NewEnvironment(),
		logger: logger,
	}
}

// parseProgram parses declarations until the tokens are exhausted. The
// environment is returned only if every declaration succeeds.
func (p *parser) parseProgram(ctx context.Context) (*Environment, error) {
	for !p.eof() {
		if err := p.parseDeclaration(ctx); err != nil {
			return nil, err
		}
	}

	return p.env, nil
}

// parseDeclaration parses: Name ':' Value.
func (p *parser) parseDeclaration(ctx context.Context) error {
	name, err := p.expect(KindName, ErrExpectedName)
	if err != nil {
		return err
	}

	if _, err := p.expect(KindConstDecl, ErrExpectedConstDecl); err != nil {
		return err
	}

	value, err := p.parseValue()
	if err != nil {
		return err
	}

	if err := p.env.define(name.Lexeme, value); err != nil {
		return WrapError(err).At(name.Line, name.Lexeme)
	}

	p.logger.TraceContext(ctx, "declare constant",
		slog.String("name", name.Lexeme),
		slog.String("type", value.Type.String()),
		slog.Int("line", name.Line))

	return nil
}

// parseValue dispatches on the lookahead token.
func (p *parser) parseValue() (Value, error) {
	tok, err := p.peek()
	if err != nil {
		return Value{}, err
	}

	switch tok.Kind {
	case KindNumber:
		p.pos++

		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return Value{}, ErrIntegerOverflow.At(tok.Line, tok.Lexeme)
		}

		return NewInteger(n), nil

	case KindString:
		p.pos++

		return NewText(unquote(tok.Lexeme)), nil

	case KindArrayStart:
		return p.parseArray()

	case KindDictStart:
		return p.parseDict()

	case KindExprStart:
		return p.parseExpression()

	default:
		return Value{}, ErrUnexpectedValue.At(tok.Line, tok.Lexeme)
	}
}

// parseArray parses: '<<' (Value | ',')* '>>'.
func (p *parser) parseArray() (Value, error) {
	open := p.advance() // '<<'
	items := make([]Value, 0)

	for {
		if p.eof() {
			return Value{}, ErrUnclosedArray.At(open.Line, open.Lexeme)
		}

		switch p.current().Kind {
		case KindArrayEnd:
			p.pos++

			return NewArray(items...), nil

		case KindComma:
			p.pos++

		default:
			item, err := p.parseValue()
			if err != nil {
				return Value{}, err
			}

			items = append(items, item)
		}
	}
}

// parseDict parses: '[' (Name '[' String ']')* ']'.
func (p *parser) parseDict() (Value, error) {
	open := p.advance() // '['
	dict := NewDict()

	for {
		if p.eof() {
			return Value{}, ErrUnclosedDict.At(open.Line, open.Lexeme)
		}

		key := p.current()

		switch key.Kind {
		case KindDictEnd:
			p.pos++

			return dict, nil

		// The len operator is a reserved word only inside expressions.
		case KindName, KindFunc:
			p.pos++

		default:
			return Value{}, ErrDictToken.At(key.Line, key.Lexeme)
		}

		if _, err := p.expect(KindDictStart, ErrDictOpen); err != nil {
			return Value{}, err
		}

		value, err := p.expect(KindString, ErrDictValue)
		if err != nil {
			return Value{}, err
		}

		if _, err := p.expect(KindDictEnd, ErrDictClose); err != nil {
			return Value{}, err
		}

		dict.Entries = dict.setEntry(Entry{Key: key.Lexeme, Value: unquote(value.Lexeme)})
	}
}

// parseExpression parses: '?[' (Number | Name | Operator | 'len')* ']' and
// evaluates it against the constants declared so far.
func (p *parser) parseExpression() (Value, error) {
	open := p.advance() // '?['

	var lexemes []string

	for {
		if p.eof() {
			return Value{}, ErrUnclosedExpr.At(open.Line, open.Lexeme)
		}

		tok := p.current()
		if tok.Kind == KindExprEnd {
			p.pos++

			break
		}

		switch tok.Kind {
		case KindNumber, KindName, KindOperator, KindFunc:
			lexemes = append(lexemes, tok.Lexeme)
			p.pos++

		default:
			return Value{}, ErrExprToken.At(tok.Line, tok.Lexeme)
		}
	}

	value, err := Evaluate(lexemes, p.env.View())
	if err != nil {
		return Value{}, WrapError(err).
			AtLine(open.Line).
			With(slog.String("expression", strings.Join(lexemes, " ")))
	}

	return value, nil
}

// expect consumes the current token if it has the given kind. Otherwise it
// returns fail located at the offending token.
func (p *parser) expect(kind TokenKind, fail *Error) (Token, error) {
	if p.eof() {
		return Token{}, fail.AtLine(p.lastLine()).Wrap(ErrUnexpectedEOF)
	}

	tok := p.current()
	if tok.Kind != kind {
		return Token{}, fail.At(tok.Line, tok.Lexeme)
	}

	p.pos++

	return tok, nil
}

// peek returns the current token, or ErrUnexpectedEOF when the tokens are
// exhausted.
func (p *parser) peek() (Token, error) {
	if p.eof() {
		return Token{}, ErrUnexpectedEOF.AtLine(p.lastLine())
	}

	return p.current(), nil
}

func (p *parser) current() Token { return p.tokens[p.pos] }

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	p.pos++

	return tok
}

func (p *parser) eof() bool { return p.pos >= len(p.tokens) }

// lastLine returns the line of the final token, for end-of-input errors.
func (p *parser) lastLine() int {
	if len(p.tokens) == 0 {
		return 1
	}

	return p.tokens[len(p.tokens)-1].Line
}

// unquote strips the surrounding single quotes from a string lexeme.
func unquote(lexeme string) string {
	return strings.TrimSuffix(strings.TrimPrefix(lexeme, "'"), "'")
}

package lang

import (
	"strings"
	"unicode/utf8"
)

// blockCommentOpen starts a block comment. The comment ends at the next ')'.
const blockCommentOpen = "(comment"

// Tokenize converts src into its token sequence. Whitespace and comments are
// discarded. The first lexical error aborts tokenization.
func Tokenize(src string) ([]Token, error) {
	lx := &lexer{input: src, line: 1}

	var tokens []Token

	for {
		tok, ok, err := lx.next()
		if err != nil {
			return nil, err
		}

		if !ok {
			return tokens, nil
		}

		if !tok.Kind.isComment() {
			tokens = append(tokens, tok)
		}
	}
}

// lexer holds the scanning state for one source text.
type lexer struct {
	input string
	pos   int
	line  int
}

// next scans one token, including comment markers. It returns false once the
// input is exhausted.
func (lx *lexer) next() (Token, bool, error) {
	lx.skipWhitespace()

	if lx.eof() {
		return Token{}, false, nil
	}

	line := lx.line

	switch ch := lx.input[lx.pos]; {
	case strings.HasPrefix(lx.input[lx.pos:], blockCommentOpen):
		return lx.blockComment()

	case ch == '%':
		return lx.lineComment(), true, nil

	case lx.hasPrefix("<<"):
		return lx.emit(KindArrayStart, 2), true, nil

	case lx.hasPrefix(">>"):
		return lx.emit(KindArrayEnd, 2), true, nil

	case ch == ',':
		return lx.emit(KindComma, 1), true, nil

	case ch == ':':
		return lx.emit(KindConstDecl, 1), true, nil

	case lx.hasPrefix("?["):
		return lx.emit(KindExprStart, 2), true, nil

	case ch == ']':
		return lx.emit(KindBracketEnd, 1), true, nil

	case ch == '[':
		return lx.emit(KindDictStart, 1), true, nil

	case isNameStart(ch):
		tok := lx.scan(KindName, isNameContinue)
		if tok.Lexeme == funcLen {
			tok.Kind = KindFunc
		}

		return tok, true, nil

	case isDigit(ch):
		return lx.scan(KindNumber, isDigit), true, nil

	case ch == '\'':
		return lx.stringLiteral()

	case strings.IndexByte("+-*/", ch) >= 0:
		return lx.emit(KindOperator, 1), true, nil

	default:
		r, _ := utf8.DecodeRuneInString(lx.input[lx.pos:])

		return Token{}, false, ErrUnexpectedChar.At(line, string(r))
	}
}

// blockComment consumes "(comment" through the next ')'. Everything between
// is discarded, including text that looks like other tokens.
func (lx *lexer) blockComment() (Token, bool, error) {
	start := lx.line
	lx.advance(len(blockCommentOpen))

	for !lx.eof() {
		if lx.input[lx.pos] == ')' {
			lx.advance(1)

			return Token{Kind: KindBlockCommentEnd, Lexeme: ")", Line: start}, true, nil
		}

		lx.advance(1)
	}

	return Token{}, false, ErrUnclosedComment.At(start, blockCommentOpen)
}

// lineComment consumes '%' through the end of the line. The newline itself
// is left for skipWhitespace so the line counter stays in one place.
func (lx *lexer) lineComment() Token {
	start := lx.pos
	line := lx.line

	for !lx.eof() && lx.input[lx.pos] != '\n' {
		lx.pos++
	}

	return Token{Kind: KindLineComment, Lexeme: lx.input[start:lx.pos], Line: line}
}

// stringLiteral scans verbatim up to the next single quote. There are no
// escape sequences.
func (lx *lexer) stringLiteral() (Token, bool, error) {
	start := lx.pos
	line := lx.line

	end := strings.IndexByte(lx.input[start+1:], '\'')
	if end < 0 {
		return Token{}, false, ErrUnterminatedString.At(line, lx.input[start:lineEnd(lx.input, start)])
	}

	lx.advance(end + 2)

	return Token{Kind: KindString, Lexeme: lx.input[start:lx.pos], Line: line}, true, nil
}

func (lx *lexer) emit(kind TokenKind, width int) Token {
	tok := Token{Kind: kind, Lexeme: lx.input[lx.pos : lx.pos+width], Line: lx.line}
	lx.advance(width)

	return tok
}

func (lx *lexer) scan(kind TokenKind, accept func(byte) bool) Token {
	start := lx.pos

	for !lx.eof() && accept(lx.input[lx.pos]) {
		lx.pos++
	}

	return Token{Kind: kind, Lexeme: lx.input[start:lx.pos], Line: lx.line}
}

// advance moves n bytes forward, counting newlines.
func (lx *lexer) advance(n int) {
	lx.line += strings.Count(lx.input[lx.pos:lx.pos+n], "\n")
	lx.pos += n
}

func (lx *lexer) skipWhitespace() {
	for !lx.eof() {
		switch lx.input[lx.pos] {
		case ' ', '\t', '\r':
			lx.pos++
		case '\n':
			lx.pos++
			lx.line++
		default:
			return
		}
	}
}

func (lx *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(lx.input[lx.pos:], s)
}

func (lx *lexer) eof() bool { return lx.pos >= len(lx.input) }

// lineEnd returns the offset of the first newline at or after pos, or the
// input length.
func lineEnd(s string, pos int) int {
	if i := strings.IndexByte(s[pos:], '\n'); i >= 0 {
		return pos + i
	}

	return len(s)
}

// Character classification. Names and numbers are ASCII only.

func isNameStart(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isNameContinue(ch byte) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '_'
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

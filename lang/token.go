package lang

//go:generate go tool stringer --linecomment --type TokenKind,Type,Format --output kind_string.go

import "strconv"

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	KindArrayStart        TokenKind = iota // <<
	KindArrayEnd                           // >>
	KindComma                              // ,
	KindName                               // name
	KindNumber                             // number
	KindString                             // string
	KindConstDecl                          // :
	KindExprStart                          // ?[
	KindBracketEnd                         // ]
	KindDictStart                          // [
	KindOperator                           // operator
	KindFunc                               // len
	KindBlockCommentStart                  // (comment
	KindBlockCommentEnd                    // )
	KindLineComment                        // %
)

// The closing bracket ends both dictionaries and expressions. The lexer emits
// the same kind for either; the parser decides which one it closes.
const (
	KindDictEnd = KindBracketEnd
	KindExprEnd = KindBracketEnd
)

// funcLen is the only built-in function.
const funcLen = "len"

// Token is a single lexeme with its kind and the 1-based source line it
// starts on.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
}

// String returns the token as line:kind followed by the quoted lexeme.
func (t Token) String() string {
	return strconv.Itoa(t.Line) + ":" + t.Kind.String() + " " + strconv.Quote(t.Lexeme)
}

// isComment reports whether the token belongs to a comment and must never
// reach the parser.
func (k TokenKind) isComment() bool {
	switch k {
	case KindBlockCommentStart, KindBlockCommentEnd, KindLineComment:
		return true
	default:
		return false
	}
}

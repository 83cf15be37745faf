package zlite

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode"
)

type TokenType int

const (
	TokenTypeEmpty TokenType = iota
	TokenOpening
	TokenClosing
	TokenLiteral
	TokenIdentifier
	TokenInvalid
	TokenEnd
)

func (t TokenType) String() string {
	switch t {
	case TokenOpening:
		return "Opening"
	case TokenClosing:
		return "Closing"
	case TokenLiteral:
		return "Literal"
	case TokenIdentifier:
		return "Identifier"
	case TokenInvalid:
		return "Invalid"
	case TokenEnd:
		return "End"
	}
	return "Empty"
}

type LiteralKind int

const (
	LiteralNumber LiteralKind = iota + 1
	LiteralString
	LiteralBool
)

// Literal is the value carried by a TokenLiteral.
type Literal struct {
	kind LiteralKind
	num  int32
	str  string
	b    bool
}

func NumberLiteral(n int32) Literal  { return Literal{kind: LiteralNumber, num: n} }
func StringLiteral(s string) Literal { return Literal{kind: LiteralString, str: s} }
func BoolLiteral(b bool) Literal     { return Literal{kind: LiteralBool, b: b} }

func (l Literal) Kind() LiteralKind { return l.kind }
func (l Literal) Number() int32     { return l.num }
func (l Literal) Str() string       { return l.str }
func (l Literal) Bool() bool        { return l.b }

func (l Literal) String() string {
	switch l.kind {
	case LiteralNumber:
		return strconv.FormatInt(int64(l.num), 10)
	case LiteralString:
		return l.str
	case LiteralBool:
		return strconv.FormatBool(l.b)
	}
	return ""
}

type Token struct {
	typ  TokenType
	line int
	str  string
	lit  Literal
}

var EndTk = Token{typ: TokenEnd}

func (t Token) Type() TokenType  { return t.typ }
func (t Token) Line() int        { return t.line }
func (t Token) Literal() Literal { return t.lit }

// Text is the raw lexeme of identifiers and invalid tokens, and the
// rendered value of literals.
func (t Token) Text() string {
	if t.typ == TokenLiteral {
		return t.lit.String()
	}
	return t.str
}

func (t Token) String() string {
	switch t.typ {
	case TokenOpening:
		return "("
	case TokenClosing:
		return ")"
	case TokenLiteral:
		return t.lit.String()
	case TokenEnd:
		return "<end>"
	}
	return t.str
}

func OpeningToken(line int) Token { return Token{typ: TokenOpening, line: line} }
func ClosingToken(line int) Token { return Token{typ: TokenClosing, line: line} }

func LiteralToken(line int, lit Literal) Token {
	return Token{typ: TokenLiteral, line: line, lit: lit}
}

func IdentifierToken(line int, name string) Token {
	return Token{typ: TokenIdentifier, line: line, str: name}
}

func InvalidToken(line int, partial string) Token {
	return Token{typ: TokenInvalid, line: line, str: partial}
}

type LexerState int

const (
	LexerNormal     LexerState = iota
	LexerWord                  // inside a maximal-munch word
	LexerStrLit                // inside "..."
	LexerStrEscaped            // just saw a backslash inside "..."
)

type Lexer struct {
	state  LexerState
	tokens []Token
	buffer *bytes.Buffer

	linenum int

	// line on which the pending word or string began
	startLine int
}

func NewLexer() *Lexer {
	return &Lexer{
		tokens:  make([]Token, 0, 10),
		buffer:  new(bytes.Buffer),
		state:   LexerNormal,
		linenum: 1,
	}
}

// Lex converts the whole of src into its token sequence.
// It never fails: bad lexemes come back as TokenInvalid.
func Lex(src string) []Token {
	return NewLexer().LexString(src)
}

func (lexer *Lexer) Linenum() int {
	return lexer.linenum
}

func (lexer *Lexer) Reset() {
	lexer.tokens = lexer.tokens[:0]
	lexer.state = LexerNormal
	lexer.linenum = 1
	lexer.startLine = 0
	lexer.buffer.Reset()
}

func (lexer *Lexer) AppendToken(tok Token) {
	lexer.tokens = append(lexer.tokens, tok)
}

func (lexer *Lexer) LexString(src string) []Token {
	for _, r := range src {
		lexer.LexNextRune(r)
	}
	return lexer.Finish()
}

// DecodeWord classifies a maximal-munch word: 32-bit integer first,
// then boolean, and anything else is an identifier.
func DecodeWord(line int, word string) Token {
	if n, err := strconv.ParseInt(word, 10, 32); err == nil {
		return LiteralToken(line, NumberLiteral(int32(n)))
	}
	if word == "true" || word == "false" {
		return LiteralToken(line, BoolLiteral(word == "true"))
	}
	return IdentifierToken(line, word)
}

func (lexer *Lexer) dumpWord() {
	if lexer.buffer.Len() == 0 {
		return
	}
	lexer.AppendToken(DecodeWord(lexer.startLine, lexer.buffer.String()))
	lexer.buffer.Reset()
}

func (lexer *Lexer) dumpString() {
	lexer.AppendToken(LiteralToken(lexer.startLine, StringLiteral(lexer.buffer.String())))
	lexer.buffer.Reset()
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == '"'
}

func (lexer *Lexer) LexNextRune(r rune) {
	if r == '\n' {
		lexer.linenum++
	}
top:
	switch lexer.state {

	case LexerStrEscaped:
		lexer.buffer.WriteRune(r)
		lexer.state = LexerStrLit
		return

	case LexerStrLit:
		lexer.buffer.WriteRune(r)
		switch r {
		case '\\':
			lexer.state = LexerStrEscaped
		case '"':
			lexer.dumpString()
			lexer.state = LexerNormal
		}
		return

	case LexerWord:
		if isWordBreak(r) {
			lexer.dumpWord()
			lexer.state = LexerNormal
			goto top
		}
		lexer.buffer.WriteRune(r)
		return

	case LexerNormal:
		line := lexer.linenum
		switch {
		case unicode.IsSpace(r):
			return
		case r == '(':
			lexer.AppendToken(OpeningToken(line))
			return
		case r == ')':
			lexer.AppendToken(ClosingToken(line))
			return
		case r == '"':
			lexer.startLine = line
			lexer.buffer.WriteRune(r)
			lexer.state = LexerStrLit
			return
		}
		lexer.startLine = line
		lexer.buffer.WriteRune(r)
		lexer.state = LexerWord
	}
}

// Finish flushes any pending word, turns an unterminated string into
// a TokenInvalid, and returns the tokens lexed so far.
func (lexer *Lexer) Finish() []Token {
	switch lexer.state {
	case LexerWord:
		lexer.dumpWord()
	case LexerStrLit, LexerStrEscaped:
		lexer.AppendToken(InvalidToken(lexer.startLine, lexer.buffer.String()))
		lexer.buffer.Reset()
	}
	lexer.state = LexerNormal
	out := make([]Token, len(lexer.tokens))
	copy(out, lexer.tokens)
	lexer.tokens = lexer.tokens[:0]
	return out
}

// GoString keeps test failure output readable.
func (t Token) GoString() string {
	return fmt.Sprintf("%s{line:%d, %q}", t.typ, t.line, t.String())
}

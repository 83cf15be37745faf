package zlite

const SliceDefaultCap = 10

// Parser turns a token sequence into top-level forms using one token
// of lookahead. It stops at the first error.
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(toks []Token) *Parser {
	return &Parser{tokens: toks}
}

// Parse is the one-shot entry point. On failure the ErrorList holds
// the first error encountered.
func Parse(toks []Token) ([]Sexp, error) {
	return NewParser(toks).ParseTokens()
}

func ParseString(src string) ([]Sexp, error) {
	return Parse(Lex(src))
}

func (p *Parser) PeekNextToken() Token {
	if p.pos >= len(p.tokens) {
		return EndTk
	}
	return p.tokens[p.pos]
}

func (p *Parser) GetNextToken() Token {
	tok := p.PeekNextToken()
	if tok.typ != TokenEnd {
		p.pos++
	}
	return tok
}

// ParseTokens is the main service the Parser provides.
// Every top-level form has to be a list.
func (p *Parser) ParseTokens() (sx []Sexp, err error) {
	for {
		tok := p.PeekNextToken()
		switch tok.typ {
		case TokenEnd:
			return sx, nil
		case TokenOpening:
			expr, err := p.ParseExpression(0)
			if err != nil {
				return nil, ErrorList{err}
			}
			sx = append(sx, expr)
		default:
			return nil, ErrorList{&InvalidTokenError{Tok: tok}}
		}
	}
}

func (p *Parser) ParseExpression(depth int) (Sexp, error) {
	tok := p.GetNextToken()
	switch tok.typ {
	case TokenEnd:
		return SexpEnd, ErrUnexpectedEnd
	case TokenOpening:
		return p.ParseList(depth+1, tok)
	case TokenIdentifier:
		return MakeSymbol(tok.str), nil
	case TokenLiteral:
		switch tok.lit.kind {
		case LiteralNumber:
			return &SexpInt{Val: tok.lit.num}, nil
		case LiteralString:
			return &SexpStr{S: tok.lit.str}, nil
		case LiteralBool:
			return &SexpBool{Val: tok.lit.b}, nil
		}
	}
	// TokenInvalid and stray closing parens
	return SexpVoid, &InvalidTokenError{Tok: tok}
}

// ParseList collects children up to the Closing that matches open,
// which has already been consumed.
func (p *Parser) ParseList(depth int, open Token) (Sexp, error) {
	list := make([]Sexp, 0, SliceDefaultCap)
	for {
		tok := p.PeekNextToken()
		switch tok.typ {
		case TokenEnd:
			return SexpVoid, &IncompleteExpressionError{Line: open.line}
		case TokenClosing:
			p.GetNextToken()
			return MakeList(list), nil
		}
		expr, err := p.ParseExpression(depth + 1)
		if err != nil {
			return SexpVoid, err
		}
		list = append(list, expr)
	}
}

package zlite

import (
	"errors"
	"fmt"
	"strings"
)

// CompilerError marks the lexical, structural and evaluation
// failures of the front end and evaluator.
type CompilerError interface {
	error
	compilerError()
}

// InvalidTokenError reports a token that cannot appear where it was
// found, including lexer-flagged TokenInvalid tokens.
type InvalidTokenError struct {
	Tok Token
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token on line %d: %s", e.Tok.Line(), e.Tok.String())
}

// IncompleteExpressionError reports a list whose closing paren never came.
type IncompleteExpressionError struct {
	Line int
}

func (e *IncompleteExpressionError) Error() string {
	return fmt.Sprintf("unterminated list starting on line %d", e.Line)
}

type unexpectedEndError struct{}

func (e *unexpectedEndError) Error() string {
	return "unexpected end of input"
}

var ErrUnexpectedEnd error = &unexpectedEndError{}

type UnknownSymbolError struct {
	Name string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol '%s'", e.Name)
}

// InvalidListError carries the expression that could not be evaluated.
type InvalidListError struct {
	Expr Sexp
}

func (e *InvalidListError) Error() string {
	return fmt.Sprintf("invalid list: %s (%s)", e.Expr.SexpString(), TypeName(e.Expr))
}

func (e *InvalidTokenError) compilerError()         {}
func (e *IncompleteExpressionError) compilerError() {}
func (e *unexpectedEndError) compilerError()        {}
func (e *UnknownSymbolError) compilerError()        {}
func (e *InvalidListError) compilerError()          {}

// ErrorList is what Parse returns on failure. It is never empty.
type ErrorList []error

func (el ErrorList) Error() string {
	msgs := make([]string, len(el))
	for i, e := range el {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (el ErrorList) Unwrap() []error {
	return el
}

var ErrNoExpressions = errors.New("no expressions found")

func panicOn(err error) {
	if err != nil {
		panic(err)
	}
}

// FormatError renders err the way the command line reports it.
func FormatError(err error) string {
	var (
		invTok *InvalidTokenError
		incomp *IncompleteExpressionError
		unk    *UnknownSymbolError
		invLst *InvalidListError
	)
	switch {
	case errors.As(err, &invTok):
		return fmt.Sprintf("Invalid token on line %d: %s", invTok.Tok.Line(), invTok.Tok.String())
	case errors.As(err, &incomp):
		return fmt.Sprintf("Unterminated list starting on line %d", incomp.Line)
	case errors.Is(err, ErrUnexpectedEnd):
		return "Unexpected end of input"
	case errors.As(err, &unk):
		return fmt.Sprintf("Unknown symbol '%s'", unk.Name)
	case errors.As(err, &invLst):
		return fmt.Sprintf("Invalid list: %s", invLst.Expr.SexpString())
	}
	return err.Error()
}

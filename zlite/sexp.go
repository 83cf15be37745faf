package zlite

import (
	"strconv"
	"strings"
)

type Sexp interface {
	SexpString() string
}

type SexpSentinel int

const (
	SexpVoid SexpSentinel = iota
	SexpEnd
)

func (sent SexpSentinel) SexpString() string {
	if sent == SexpVoid {
		return "()"
	}
	if sent == SexpEnd {
		return "End"
	}
	return ""
}

type SexpInt struct {
	Val int32
}

func (i *SexpInt) SexpString() string {
	return strconv.FormatInt(int64(i.Val), 10)
}

type SexpBool struct {
	Val bool
}

func (b *SexpBool) SexpString() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// SexpStr holds a string lexeme verbatim, delimiting quotes included.
type SexpStr struct {
	S string
}

func (s *SexpStr) SexpString() string {
	return s.S
}

type SexpSymbol struct {
	name string
}

func (sym *SexpSymbol) SexpString() string {
	return sym.name
}

func (sym *SexpSymbol) Name() string {
	return sym.name
}

func MakeSymbol(name string) *SexpSymbol {
	return &SexpSymbol{name: name}
}

type SexpList struct {
	Val []Sexp
}

func (list *SexpList) SexpString() string {
	if len(list.Val) == 0 {
		return "()"
	}
	var sb strings.Builder
	sb.WriteString("(")
	for i, x := range list.Val {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(x.SexpString())
	}
	sb.WriteString(")")
	return sb.String()
}

func (list *SexpList) Head() Sexp {
	if len(list.Val) == 0 {
		return SexpVoid
	}
	return list.Val[0]
}

func MakeList(expressions []Sexp) *SexpList {
	return &SexpList{Val: expressions}
}

// SexpsString renders a program, one form per line.
func SexpsString(xs []Sexp) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.SexpString()
	}
	return strings.Join(parts, "\n")
}

// TypeName names the variant of x; the names double as the codec kinds.
func TypeName(x Sexp) string {
	switch x.(type) {
	case SexpSentinel:
		return "void"
	case *SexpInt:
		return "number"
	case *SexpBool:
		return "boolean"
	case *SexpStr:
		return "string"
	case *SexpSymbol:
		return "identifier"
	case *SexpList:
		return "list"
	}
	return "unknown"
}

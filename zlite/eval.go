package zlite

// Evaluator walks top-level forms against the one Environment it owns.
type Evaluator struct {
	env *Environment
}

func NewEvaluator() *Evaluator {
	return &Evaluator{env: NewEnvironment()}
}

func (ev *Evaluator) Env() *Environment {
	return ev.env
}

// Eval runs forms on a fresh Evaluator.
func Eval(forms []Sexp) ([]Sexp, error) {
	return NewEvaluator().EvalProgram(forms)
}

// EvalProgram evaluates forms in order. The first error ends the run
// and no results are returned.
func (ev *Evaluator) EvalProgram(forms []Sexp) ([]Sexp, error) {
	out := make([]Sexp, 0, len(forms))
	for _, form := range forms {
		res, err := ev.Eval(form)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// EvalString lexes, parses and evaluates src against ev's environment.
func (ev *Evaluator) EvalString(src string) ([]Sexp, error) {
	forms, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return ev.EvalProgram(forms)
}

func (ev *Evaluator) Eval(expr Sexp) (Sexp, error) {
	if Verbose {
		VPrintf("eval %s\n", expr.SexpString())
	}
	switch e := expr.(type) {
	case SexpSentinel, *SexpInt, *SexpBool, *SexpStr:
		return expr, nil
	case *SexpSymbol:
		val, found := ev.env.Lookup(e.name)
		if !found {
			return SexpVoid, &UnknownSymbolError{Name: e.name}
		}
		return val, nil
	case *SexpList:
		return ev.evalList(e)
	}
	return SexpVoid, &InvalidListError{Expr: expr}
}

func (ev *Evaluator) evalList(list *SexpList) (Sexp, error) {
	if len(list.Val) == 0 {
		return SexpVoid, nil
	}
	switch head := list.Head().(type) {
	case *SexpList:
		// No function application: a list in head position is
		// evaluated and its value returned, the rest is dropped.
		return ev.Eval(head)
	case *SexpSymbol:
		switch head.name {
		case "+":
			return ev.evalSum(list)
		case "=":
			eq, err := ev.evalEqual(list)
			if err != nil {
				return SexpVoid, err
			}
			return &SexpBool{Val: eq}, nil
		case "!=":
			eq, err := ev.evalEqual(list)
			if err != nil {
				return SexpVoid, err
			}
			return &SexpBool{Val: !eq}, nil
		case "if":
			return ev.evalIf(list)
		case "define":
			return ev.evalDefine(list)
		}
		return SexpVoid, &UnknownSymbolError{Name: head.name}
	}
	return SexpVoid, &InvalidListError{Expr: list}
}

// evalSum wraps on int32 overflow.
func (ev *Evaluator) evalSum(list *SexpList) (Sexp, error) {
	var sum int32
	for _, arg := range list.Val[1:] {
		n, err := ev.evalToNumber(arg)
		if err != nil {
			return SexpVoid, err
		}
		sum += n
	}
	return &SexpInt{Val: sum}, nil
}

func (ev *Evaluator) evalIf(list *SexpList) (Sexp, error) {
	if len(list.Val) != 4 {
		return SexpVoid, &InvalidListError{Expr: list}
	}
	cond, err := ev.evalToBool(list.Val[1])
	if err != nil {
		return SexpVoid, err
	}
	if cond {
		return ev.Eval(list.Val[2])
	}
	return ev.Eval(list.Val[3])
}

func (ev *Evaluator) evalDefine(list *SexpList) (Sexp, error) {
	if len(list.Val) != 3 {
		return SexpVoid, &InvalidListError{Expr: list}
	}
	sym, isSym := list.Val[1].(*SexpSymbol)
	if !isSym {
		return SexpVoid, &InvalidListError{Expr: list}
	}
	val, err := ev.Eval(list.Val[2])
	if err != nil {
		return SexpVoid, err
	}
	ev.env.Define(sym.name, val)
	return SexpVoid, nil
}

func (ev *Evaluator) evalToNumber(expr Sexp) (int32, error) {
	val, err := ev.Eval(expr)
	if err != nil {
		return 0, err
	}
	n, isInt := val.(*SexpInt)
	if !isInt {
		return 0, &InvalidListError{Expr: expr}
	}
	return n.Val, nil
}

func (ev *Evaluator) evalToBool(expr Sexp) (bool, error) {
	val, err := ev.Eval(expr)
	if err != nil {
		return false, err
	}
	b, isBool := val.(*SexpBool)
	if !isBool {
		return false, &InvalidListError{Expr: expr}
	}
	return b.Val, nil
}

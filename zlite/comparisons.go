package zlite

// compareEqual implements `=` on two evaluated operands. Only numbers,
// booleans and strings compare, and only against their own kind.
func compareEqual(a Sexp, b Sexp) (bool, bool) {
	switch at := a.(type) {
	case *SexpInt:
		if bt, ok := b.(*SexpInt); ok {
			return at.Val == bt.Val, true
		}
	case *SexpBool:
		if bt, ok := b.(*SexpBool); ok {
			return at.Val == bt.Val, true
		}
	case *SexpStr:
		if bt, ok := b.(*SexpStr); ok {
			return at.S == bt.S, true
		}
	}
	return false, false
}

func (ev *Evaluator) evalEqual(list *SexpList) (bool, error) {
	if len(list.Val) != 3 {
		return false, &InvalidListError{Expr: list}
	}
	a, err := ev.Eval(list.Val[1])
	if err != nil {
		return false, err
	}
	b, err := ev.Eval(list.Val[2])
	if err != nil {
		return false, err
	}
	eq, comparable := compareEqual(a, b)
	if !comparable {
		return false, &InvalidListError{Expr: list}
	}
	return eq, nil
}

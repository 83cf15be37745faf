package zlite

import (
	"errors"
	"strings"
	"testing"
	"time"

	cv "github.com/glycerine/goconvey/convey"
)

func run(src string) ([]Sexp, error) {
	forms, err := ParseString(src)
	panicOn(err)
	return Eval(forms)
}

func Test100EvalPlus(t *testing.T) {

	cv.Convey(`(+ 1 2) evaluates to 3, and nested sums are evaluated recursively`, t, func() {
		res, err := run("(+ 1 2)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{num(3)})

		res, err = run("(+ (+ 4 5) 2)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{num(11)})

		res, err = run("(+ (+ 4 (+ 3 2)) 2)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{num(11)})

		cv.Convey(`the sum is variadic, with (+) being zero`, func() {
			res, err := run("(+) (+ 5) (+ 1 2 3 4 -10)")
			cv.So(err, cv.ShouldBeNil)
			cv.So(res, cv.ShouldResemble, []Sexp{num(0), num(5), num(0)})
		})

		cv.Convey(`int32 overflow wraps around`, func() {
			res, err := run("(+ 2147483647 1)")
			cv.So(err, cv.ShouldBeNil)
			cv.So(res, cv.ShouldResemble, []Sexp{num(-2147483648)})
		})

		cv.Convey(`a non-numeric operand is an InvalidList error carrying that operand`, func() {
			var invLst *InvalidListError
			_, err := run(`(+ 1 "two")`)
			cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
			cv.So(invLst.Expr, cv.ShouldResemble, &SexpStr{S: `"two"`})

			_, err = run("(+ 1 (= 1 1))")
			cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
			cv.So(invLst.Expr.SexpString(), cv.ShouldEqual, "(= 1 1)")

			_, err = run("(+ 1 ())")
			cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
		})
	})
}

func Test101EvalEquality(t *testing.T) {

	cv.Convey(`= compares two evaluated operands of the same kind; != negates it`, t, func() {
		res, err := run("(= 1 2) (!= 1 2) (= 3 (+ 1 2)) (= true true) (= \"a\" \"a\") (!= \"a\" \"b\") (= false true)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{
			&SexpBool{Val: false},
			&SexpBool{Val: true},
			&SexpBool{Val: true},
			&SexpBool{Val: true},
			&SexpBool{Val: true},
			&SexpBool{Val: true},
			&SexpBool{Val: false},
		})

		cv.Convey(`mismatched or unsupported kinds and wrong arity are InvalidList, for = and != alike`, func() {
			var invLst *InvalidListError
			for _, src := range []string{
				`(= 1 true)`, `(= "1" 1)`, `(!= 1 false)`,
				`(= () ())`, `(= 1)`, `(= 1 2 3)`, `(!= 1)`, `(=)`,
			} {
				_, err := run(src)
				cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
			}
		})

		cv.Convey(`!= propagates errors from its operands unchanged`, func() {
			var unk *UnknownSymbolError
			_, err := run(`(!= nope 1)`)
			cv.So(errors.As(err, &unk), cv.ShouldBeTrue)
			cv.So(unk.Name, cv.ShouldEqual, "nope")
		})
	})
}

func Test102IfEvaluatesOnlyTheSelectedBranch(t *testing.T) {

	cv.Convey(`(if (= 1 2) (+ 1 1) (+ 2 2)) is 4`, t, func() {
		res, err := run("(if (= 1 2) (+ 1 1) (+ 2 2))")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{num(4)})

		cv.Convey(`and the branch not taken is never evaluated`, func() {
			res, err := run("(if (= 1 2) (undefinedThing 1) (+ 2 2))")
			cv.So(err, cv.ShouldBeNil)
			cv.So(res, cv.ShouldResemble, []Sexp{num(4)})

			res, err = run("(if (!= 1 2) 7 (undefinedThing 1))")
			cv.So(err, cv.ShouldBeNil)
			cv.So(res, cv.ShouldResemble, []Sexp{num(7)})

			// a define in the untaken branch leaves no binding behind
			res, err = run("(if true 1 (define x 5)) (+ x 1)")
			cv.So(res, cv.ShouldBeNil)
			var unk *UnknownSymbolError
			cv.So(errors.As(err, &unk), cv.ShouldBeTrue)
			cv.So(unk.Name, cv.ShouldEqual, "x")
		})

		cv.Convey(`the condition is fully evaluated before it is coerced to a boolean`, func() {
			res, err := run("(if (= (+ 1 1) 2) \"yes\" \"no\")")
			cv.So(err, cv.ShouldBeNil)
			cv.So(res, cv.ShouldResemble, []Sexp{&SexpStr{S: `"yes"`}})
		})

		cv.Convey(`a wrong arity or a non-boolean condition is InvalidList`, func() {
			var invLst *InvalidListError
			_, err := run("(if 1 2)")
			cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
			cv.So(invLst.Expr.SexpString(), cv.ShouldEqual, "(if 1 2)")

			_, err = run("(if true 1 2 3)")
			cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)

			_, err = run("(if 1 2 3)")
			cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
			cv.So(invLst.Expr, cv.ShouldResemble, num(1))
		})
	})
}

func Test103DefineBindsInTheFlatEnvironment(t *testing.T) {

	cv.Convey(`[(define a 2), (+ a 4)] evaluates to [Void, 6]`, t, func() {
		res, err := run("(define a 2) (+ a 4)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{SexpVoid, num(6)})

		cv.Convey(`and redefinition overwrites the earlier binding`, func() {
			res, err := run("(define a 2) (define a 9) (+ a 1)")
			cv.So(err, cv.ShouldBeNil)
			cv.So(res, cv.ShouldResemble, []Sexp{SexpVoid, SexpVoid, num(10)})
		})

		cv.Convey(`the bound value is evaluated once, at define time`, func() {
			ev := NewEvaluator()
			res, err := ev.EvalString("(define a (+ 1 2)) (define b (= a 3)) (define s \"str\")")
			cv.So(err, cv.ShouldBeNil)
			cv.So(len(res), cv.ShouldEqual, 3)
			a, found := ev.Env().Lookup("a")
			cv.So(found, cv.ShouldBeTrue)
			cv.So(a, cv.ShouldResemble, num(3))
			b, _ := ev.Env().Lookup("b")
			cv.So(b, cv.ShouldResemble, &SexpBool{Val: true})
			cv.So(ev.Env().Names(), cv.ShouldResemble, []string{"a", "b", "s"})
		})

		cv.Convey(`the name must be an identifier and exactly one value must follow`, func() {
			var invLst *InvalidListError
			for _, src := range []string{
				"(define 1 2)", "(define (a) 2)", "(define a)", "(define a 1 2)", "(define)", `(define "a" 1)`,
			} {
				_, err := run(src)
				cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
			}
		})
	})
}

func Test104IdentifiersAndHeads(t *testing.T) {

	cv.Convey(`An unknown head is UnknownSymbol, even for names bound with define`, t, func() {
		var unk *UnknownSymbolError
		_, err := run("(foo 1 2)")
		cv.So(errors.As(err, &unk), cv.ShouldBeTrue)
		cv.So(unk.Name, cv.ShouldEqual, "foo")
		cv.So(FormatError(err), cv.ShouldEqual, "Unknown symbol 'foo'")

		_, err = run("(define f 1) (f)")
		cv.So(errors.As(err, &unk), cv.ShouldBeTrue)
		cv.So(unk.Name, cv.ShouldEqual, "f")

		_, err = run("(+ y 1)")
		cv.So(errors.As(err, &unk), cv.ShouldBeTrue)
		cv.So(unk.Name, cv.ShouldEqual, "y")
	})

	cv.Convey(`A literal in head position is InvalidList`, t, func() {
		var invLst *InvalidListError
		for _, src := range []string{"(1 2)", "(true)", `("s" 1)`} {
			_, err := run(src)
			cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
			cv.So(FormatError(err), cv.ShouldStartWith, "Invalid list: ")
		}
		_, err := NewEvaluator().Eval(MakeList([]Sexp{SexpVoid, num(1)}))
		cv.So(errors.As(err, &invLst), cv.ShouldBeTrue)
	})

	cv.Convey(`A list in head position is evaluated and its value returned; the remaining elements are dropped unevaluated`, t, func() {
		res, err := run("((+ 1 2) (undefinedThing) 99)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{num(3)})

		res, err = run("(() 1)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{SexpVoid})

		_, err = run("((nope) 1)")
		var unk *UnknownSymbolError
		cv.So(errors.As(err, &unk), cv.ShouldBeTrue)
	})

	cv.Convey(`Atoms are self-evaluating and the empty list is Void`, t, func() {
		ev := NewEvaluator()
		for _, x := range []Sexp{num(5), &SexpBool{Val: true}, &SexpStr{S: `"q"`}, SexpVoid} {
			res, err := ev.Eval(x)
			cv.So(err, cv.ShouldBeNil)
			cv.So(res, cv.ShouldResemble, x)
		}
		res, err := run("()")
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{SexpVoid})
		cv.So(res[0].SexpString(), cv.ShouldEqual, "()")
	})
}

func Test105EvaluationIsFailFast(t *testing.T) {

	cv.Convey(`The first evaluation error stops the run: no partial results, and later forms never run`, t, func() {
		ev := NewEvaluator()
		res, err := ev.EvalString("(define a 1) (nope) (define b 2)")
		cv.So(res, cv.ShouldBeNil)
		var unk *UnknownSymbolError
		cv.So(errors.As(err, &unk), cv.ShouldBeTrue)

		_, found := ev.Env().Lookup("a")
		cv.So(found, cv.ShouldBeTrue)
		_, found = ev.Env().Lookup("b")
		cv.So(found, cv.ShouldBeFalse)
	})

	cv.Convey(`Each top-level Eval run gets a fresh environment`, t, func() {
		_, err := run("(define a 1)")
		cv.So(err, cv.ShouldBeNil)
		_, err = run("(+ a 1)")
		var unk *UnknownSymbolError
		cv.So(errors.As(err, &unk), cv.ShouldBeTrue)
	})

	cv.Convey(`Evaluation never mutates the trees it is given`, t, func() {
		forms, err := ParseString("(define a (+ 1 2)) (+ a a)")
		panicOn(err)
		before := SexpsString(forms)
		_, err = Eval(forms)
		cv.So(err, cv.ShouldBeNil)
		cv.So(SexpsString(forms), cv.ShouldEqual, before)
	})
}

func Test106DeepNestingEvaluatesInLinearTime(t *testing.T) {

	cv.Convey(`A sum nested 10000 deep evaluates well within a second`, t, func() {
		depth := 10000
		src := strings.Repeat("(+ 1 ", depth) + "0" + strings.Repeat(")", depth)
		forms, err := ParseString(src)
		cv.So(err, cv.ShouldBeNil)

		t0 := time.Now()
		res, err := Eval(forms)
		elap := time.Since(t0)
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{num(int32(depth))})
		cv.So(elap < time.Second, cv.ShouldBeTrue)
	})

	cv.Convey(`Head is the first element, or Void for the empty list`, t, func() {
		cv.So(list(sym("+"), num(1)).Head(), cv.ShouldResemble, sym("+"))
		cv.So(list().Head(), cv.ShouldEqual, SexpVoid)
	})

	cv.Convey(`InvalidListError names the kind of the rejected expression`, t, func() {
		_, err := run(`(+ 1 "two")`)
		cv.So(err.Error(), cv.ShouldEqual, `invalid list: "two" (string)`)
		cv.So(FormatError(err), cv.ShouldEqual, `Invalid list: "two"`)
	})
}

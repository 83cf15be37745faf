package zlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test220ProgramCacheHitAndMiss(t *testing.T) {

	cv.Convey(`ParseCached parses and stores on a miss, then serves the stored program`, t, func() {
		dir := filepath.Join(t.TempDir(), "cache")
		c := NewProgramCache(dir)
		src := []byte("(define a 2)\n(+ a 4)")

		_, hit, err := c.Load(src)
		cv.So(err, cv.ShouldBeNil)
		cv.So(hit, cv.ShouldBeFalse)

		forms, err := c.ParseCached(src)
		cv.So(err, cv.ShouldBeNil)
		cv.So(SexpsString(forms), cv.ShouldEqual, "(define a 2)\n(+ a 4)")

		entries, err := os.ReadDir(dir)
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(entries), cv.ShouldEqual, 1)
		cv.So(filepath.Ext(entries[0].Name()), cv.ShouldEqual, ".msgp")

		prog, hit, err := c.Load(src)
		cv.So(err, cv.ShouldBeNil)
		cv.So(hit, cv.ShouldBeTrue)
		res, err := Eval(prog)
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldResemble, []Sexp{SexpVoid, num(6)})

		cv.Convey(`different source text is a different key`, func() {
			cv.So(SourceHash(src), cv.ShouldNotEqual, SourceHash([]byte("(+ 1 2)")))
			_, hit, err := c.Load([]byte("(+ 1 2)"))
			cv.So(err, cv.ShouldBeNil)
			cv.So(hit, cv.ShouldBeFalse)
		})
	})
}

func Test221ProgramCacheIgnoresCorruptEntries(t *testing.T) {

	cv.Convey(`A corrupt entry is treated as a miss and overwritten by the next parse`, t, func() {
		c := NewProgramCache(t.TempDir())
		src := []byte("(+ 1 2)")
		cv.So(os.WriteFile(c.path(src), []byte{0xc1, 0x00, 0x17}, 0644), cv.ShouldBeNil)

		_, hit, err := c.Load(src)
		cv.So(err, cv.ShouldBeNil)
		cv.So(hit, cv.ShouldBeFalse)

		forms, err := c.ParseCached(src)
		cv.So(err, cv.ShouldBeNil)
		cv.So(SexpsString(forms), cv.ShouldEqual, "(+ 1 2)")
		_, hit, _ = c.Load(src)
		cv.So(hit, cv.ShouldBeTrue)
	})

	cv.Convey(`An entry whose array header claims more nodes than it holds is a miss, not an allocation`, t, func() {
		c := NewProgramCache(t.TempDir())
		src := []byte("(+ 1 2)")
		cv.So(os.WriteFile(c.path(src), []byte{0xdd, 0xff, 0xff, 0xff, 0xff}, 0644), cv.ShouldBeNil)

		_, hit, err := c.Load(src)
		cv.So(err, cv.ShouldBeNil)
		cv.So(hit, cv.ShouldBeFalse)

		forms, err := c.ParseCached(src)
		cv.So(err, cv.ShouldBeNil)
		cv.So(SexpsString(forms), cv.ShouldEqual, "(+ 1 2)")
	})

	cv.Convey(`A failed parse is returned unchanged and never stored`, t, func() {
		dir := t.TempDir()
		c := NewProgramCache(dir)
		_, err := c.ParseCached([]byte("(+ 1"))
		var incomp *IncompleteExpressionError
		cv.So(errors.As(err, &incomp), cv.ShouldBeTrue)
		entries, _ := os.ReadDir(dir)
		cv.So(len(entries), cv.ShouldEqual, 0)
	})
}

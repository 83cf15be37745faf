/*
The zlite command line: a repl with no arguments, file mode with one.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glycerine/zlite/zlite"
)

func usage(myflags *flag.FlagSet) {
	fmt.Printf("zlite command line help:\n")
	myflags.PrintDefaults()
	os.Exit(1)
}

func main() {
	cfg := zlite.NewZliteConfig("zlite")
	cfg.DefineFlags()
	err := cfg.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		usage(cfg.Flags)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zlite command line error: '%v'\n", err)
		usage(cfg.Flags)
	}
	err = cfg.ValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zlite command line error: '%v'\n", err)
		usage(cfg.Flags)
	}

	// the library does all the heavy lifting.
	os.Exit(zlite.ReplMain(cfg))
}

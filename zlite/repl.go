package zlite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shurcooL/go-goon"
)

type lineGetter interface {
	Getline() (string, error)
	Close()
}

// plainPrompter is used if one wishes to drop the liner library.
// Useful for not full terminal env, like under test.
type plainPrompter struct {
	prompt string
	reader *bufio.Reader
	out    io.Writer
}

func (pp *plainPrompter) Getline() (string, error) {
	fmt.Fprint(pp.out, pp.prompt)
	return getLine(pp.reader)
}

func (pp *plainPrompter) Close() {}

func getLine(reader *bufio.Reader) (string, error) {
	line := make([]byte, 0)
	for {
		linepart, hasMore, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return string(line), nil
			}
			return "", err
		}
		line = append(line, linepart...)
		if !hasMore {
			break
		}
	}
	return string(line), nil
}

// Repl reads one line at a time and evaluates it against ev until
// it reads `quit` or runs out of input.
func Repl(ev *Evaluator, cfg *ZliteConfig) {
	out := cfg.Stdout
	if !cfg.Quiet {
		fmt.Fprintln(out, "Welcome to Lisp interpreter")
		fmt.Fprintln(out, "Type 'quit' to exit")
	}

	var pr lineGetter
	if cfg.NoLiner {
		pr = &plainPrompter{prompt: cfg.Prompt, reader: bufio.NewReader(cfg.Stdin), out: out}
	} else {
		pr = NewPrompter(cfg.Prompt, cfg.HistoryFile)
	}
	defer pr.Close()

	for {
		line, err := pr.Getline()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(out, err)
			}
			break
		}
		if !processLine(ev, cfg, line) {
			break
		}
	}
	fmt.Fprintln(out, "Goodbye")
}

// processLine returns false when the repl should stop.
func processLine(ev *Evaluator, cfg *ZliteConfig, line string) bool {
	out := cfg.Stdout
	trimmed := strings.TrimSpace(line)
	if trimmed == "quit" {
		return false
	}
	if trimmed == "" {
		return true
	}

	parts := strings.Fields(trimmed)
	switch parts[0] {
	case ".env":
		fmt.Fprint(out, ev.Env().Show())
		return true
	case ".dump":
		fmt.Fprintln(out, goon.Sdump(ev.Env()))
		return true
	case ".save", ".load":
		if len(parts) < 2 {
			fmt.Fprintf(out, "provide a file path to %s.\n", parts[0][1:])
			return true
		}
		var err error
		if parts[0] == ".save" {
			err = BsaveFile(parts[1], ev.Env())
		} else {
			err = BloadFile(parts[1], ev.Env())
		}
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
		}
		return true
	}

	results, err := ev.EvalString(trimmed)
	if err != nil {
		fmt.Fprintln(out, FormatError(err))
		return true
	}
	for _, res := range results {
		fmt.Fprintln(out, res.SexpString())
	}
	return true
}

// RunFile is file mode: parse the whole file and render its AST,
// then evaluate it if cfg.Eval is set.
func RunFile(cfg *ZliteConfig, fname string) error {
	out := cfg.Stdout
	src, err := os.ReadFile(fname)
	if err != nil {
		fmt.Fprintf(out, "error opening file %s: %s\n", fname, err)
		return err
	}

	var forms []Sexp
	if cfg.CacheDir != "" {
		forms, err = NewProgramCache(cfg.CacheDir).ParseCached(src)
	} else {
		forms, err = ParseString(string(src))
	}
	if err != nil {
		fmt.Fprintln(out, FormatError(err))
		return err
	}

	err = RenderProgram(out, cfg.Format, forms)
	if err != nil {
		return err
	}

	if !cfg.Eval {
		return nil
	}
	results, err := Eval(forms)
	if err != nil {
		fmt.Fprintln(out, FormatError(err))
		return err
	}
	for _, res := range results {
		fmt.Fprintln(out, res.SexpString())
	}
	return nil
}

// RenderProgram writes forms in one of the file mode formats.
func RenderProgram(w io.Writer, format string, forms []Sexp) error {
	switch format {
	case "", "sexp":
		if len(forms) > 0 {
			fmt.Fprintln(w, SexpsString(forms))
		}
	case "goon":
		fmt.Fprint(w, goon.Sdump(forms))
	case "json":
		by, err := ProgramToJson(forms)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(by))
	default:
		return fmt.Errorf("unknown format '%s'", format)
	}
	return nil
}

// like main() for a standalone repl, now in library. Returns the
// process exit code.
func ReplMain(cfg *ZliteConfig) int {
	if cfg.ShowVersion {
		fmt.Fprintf(cfg.Stdout, "zlite version %s\n", Version())
		return 0
	}
	if cfg.Command != "" {
		results, err := NewEvaluator().EvalString(cfg.Command)
		if err != nil {
			fmt.Fprintln(cfg.Stdout, FormatError(err))
			return 1
		}
		if len(results) == 0 {
			fmt.Fprintln(cfg.Stdout, ErrNoExpressions)
			return 1
		}
		for _, res := range results {
			fmt.Fprintln(cfg.Stdout, res.SexpString())
		}
		return 0
	}

	args := cfg.Flags.Args()
	switch len(args) {
	case 0:
		Repl(NewEvaluator(), cfg)
		return 0
	case 1:
		if RunFile(cfg, args[0]) != nil {
			return 1
		}
		return 0
	}
	fmt.Fprintln(cfg.Stdout, "Invalid number of arguments, exiting")
	return 1
}

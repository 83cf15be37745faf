package zlite

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// configure a zlite repl
type ZliteConfig struct {
	Flags *flag.FlagSet `yaml:"-"`

	ConfigFile  string `yaml:"-"`
	Command     string `yaml:"-"`
	Prompt      string `yaml:"prompt"`
	Quiet       bool   `yaml:"quiet"`
	Format      string `yaml:"format"` // sexp, goon or json
	Eval        bool   `yaml:"eval"`
	CacheDir    string `yaml:"cache_dir"`
	HistoryFile string `yaml:"history_file"`
	Verbose     bool   `yaml:"verbose"`
	ShowVersion bool   `yaml:"-"`

	// liner bombs under emacs, avoid it with this flag.
	NoLiner bool `yaml:"no_liner"`

	Stdin  io.Reader `yaml:"-"`
	Stdout io.Writer `yaml:"-"`
}

func NewZliteConfig(cmdname string) *ZliteConfig {
	return &ZliteConfig{
		Flags:  flag.NewFlagSet(cmdname, flag.ContinueOnError),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// call DefineFlags before c.Parse()
func (c *ZliteConfig) DefineFlags() {
	c.Flags.StringVar(&c.ConfigFile, "config", "", "yaml config file, read before the flags")
	c.Flags.StringVar(&c.Command, "c", "", "expressions to evaluate")
	c.Flags.StringVar(&c.Prompt, "prompt", "", "repl prompt (default \"> \")")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the banner")
	c.Flags.StringVar(&c.Format, "format", "", "file mode AST rendering: sexp, goon or json")
	c.Flags.BoolVar(&c.Eval, "eval", false, "file mode: evaluate the program after printing its AST")
	c.Flags.StringVar(&c.CacheDir, "cache", "", "directory for cached parsed programs")
	c.Flags.StringVar(&c.HistoryFile, "history", "", "repl history file")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read plain lines from stdin, no line editing")
	c.Flags.BoolVar(&c.Verbose, "v", false, "trace evaluation")
	c.Flags.BoolVar(&c.ShowVersion, "version", false, "print the version and exit")
}

// Parse reads the yaml file named by -config, if any, and then
// re-applies the command line so that explicit flags win.
func (c *ZliteConfig) Parse(args []string) error {
	err := c.Flags.Parse(args)
	if err != nil {
		return err
	}
	if c.ConfigFile == "" {
		return nil
	}
	err = c.LoadYAML(c.ConfigFile)
	if err != nil {
		return err
	}
	return c.Flags.Parse(args)
}

func (c *ZliteConfig) LoadYAML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading config '%s': %w", path, err)
	}
	defer f.Close()
	return c.DecodeYAML(f)
}

func (c *ZliteConfig) DecodeYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(c)
	if err == io.EOF {
		return nil
	}
	return err
}

// call c.ValidateConfig() after c.Parse()
func (c *ZliteConfig) ValidateConfig() error {
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	switch c.Format {
	case "":
		c.Format = "sexp"
	case "sexp", "goon", "json":
	default:
		return fmt.Errorf("unknown -format '%s'; use sexp, goon or json", c.Format)
	}
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	Verbose = c.Verbose
	return nil
}

package zlite

import (
	"sort"
)

// Environment is the single flat namespace of one evaluation run.
// It is not safe for concurrent use.
type Environment struct {
	bindings map[string]Sexp
}

func NewEnvironment() *Environment {
	return &Environment{bindings: make(map[string]Sexp)}
}

func (env *Environment) Lookup(name string) (Sexp, bool) {
	val, found := env.bindings[name]
	return val, found
}

// Define binds name to val, replacing any earlier binding.
func (env *Environment) Define(name string, val Sexp) {
	env.bindings[name] = val
}

func (env *Environment) Len() int {
	return len(env.bindings)
}

// Names returns the bound names in sorted order.
func (env *Environment) Names() []string {
	names := make([]string, 0, len(env.bindings))
	for name := range env.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (env *Environment) Clear() {
	env.bindings = make(map[string]Sexp)
}

// Show lists the bindings one per line, as `name = value`.
func (env *Environment) Show() string {
	s := ""
	for _, name := range env.Names() {
		s += name + " = " + env.bindings[name].SexpString() + "\n"
	}
	return s
}

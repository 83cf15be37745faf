package zlite

import (
	"fmt"
	"io"
	"os"

	"github.com/glycerine/greenpack/msgp"
)

// SaveEnvironment writes env as a greenpack map of name to the
// msgpack form of each bound value.
func SaveEnvironment(w io.Writer, env *Environment) error {
	names := env.Names()
	o := msgp.AppendMapHeader(nil, uint32(len(names)))
	for _, name := range names {
		val, _ := env.Lookup(name)
		by, err := SexpToMsgpack(val)
		if err != nil {
			return fmt.Errorf("encoding '%s': %w", name, err)
		}
		o = msgp.AppendString(o, name)
		o = msgp.AppendBytes(o, by)
	}
	_, err := w.Write(o)
	return err
}

// LoadEnvironment adds the bindings read from r to env, overwriting
// names that are already bound. Nothing is bound unless the whole
// snapshot decodes.
func LoadEnvironment(r io.Reader, env *Environment) error {
	bts, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var nbs msgp.NilBitsStack
	var n uint32
	n, bts, err = nbs.ReadMapHeaderBytes(bts)
	if err != nil {
		return err
	}
	loaded := make(map[string]Sexp)
	for i := uint32(0); i < n; i++ {
		var name string
		var by []byte
		name, bts, err = nbs.ReadStringBytes(bts)
		if err != nil {
			return err
		}
		by, bts, err = nbs.ReadBytesBytes(bts, nil)
		if err != nil {
			return err
		}
		val, err := MsgpackToSexp(by)
		if err != nil {
			return fmt.Errorf("decoding '%s': %w", name, err)
		}
		loaded[name] = val
	}
	for name, val := range loaded {
		env.Define(name, val)
	}
	return nil
}

// BsaveFile writes env to path, refusing to overwrite an existing file.
func BsaveFile(path string, env *Environment) error {
	if FileExists(path) {
		return fmt.Errorf("refusing to write to existing file '%s'", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating '%s': %w", path, err)
	}
	err = SaveEnvironment(f, env)
	cerr := f.Close()
	if err != nil {
		return err
	}
	return cerr
}

func BloadFile(path string, env *Environment) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return LoadEnvironment(f, env)
}

func FileExists(name string) bool {
	fi, err := os.Stat(name)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}

package zlite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ProgramCache keeps parsed programs on disk, keyed by the hash of
// their source text. Only successful parses are stored.
type ProgramCache struct {
	Dir string
}

func NewProgramCache(dir string) *ProgramCache {
	return &ProgramCache{Dir: dir}
}

func (c *ProgramCache) path(src []byte) string {
	return filepath.Join(c.Dir, fmt.Sprintf("%016x.msgp", SourceHash(src)))
}

// Load reports a miss for absent or unreadable entries; only
// filesystem errors other than not-exist are returned.
func (c *ProgramCache) Load(src []byte) (Program, bool, error) {
	by, err := os.ReadFile(c.path(src))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var prog Program
	rest, err := prog.UnmarshalMsg(by)
	if err != nil || len(rest) != 0 {
		VPrintf("cache entry %s is corrupt, ignoring: %v\n", c.path(src), err)
		return nil, false, nil
	}
	return prog, true, nil
}

func (c *ProgramCache) Store(src []byte, prog Program) error {
	by, err := prog.MarshalMsg(nil)
	if err != nil {
		return err
	}
	err = os.MkdirAll(c.Dir, 0755)
	if err != nil {
		return err
	}
	tmp := c.path(src) + ".tmp"
	err = os.WriteFile(tmp, by, 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmp, c.path(src))
}

// ParseCached returns the cached parse of src, parsing and storing
// it on a miss.
func (c *ProgramCache) ParseCached(src []byte) ([]Sexp, error) {
	prog, hit, err := c.Load(src)
	if err != nil {
		return nil, err
	}
	if hit {
		return prog, nil
	}
	forms, err := ParseString(string(src))
	if err != nil {
		return nil, err
	}
	err = c.Store(src, Program(forms))
	if err != nil {
		return nil, fmt.Errorf("storing parsed program: %w", err)
	}
	return forms, nil
}

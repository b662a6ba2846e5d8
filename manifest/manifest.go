// Package manifest loads a world of programs from a TOML file.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/reusee/moo/moovm"
	"github.com/samber/lo"
)

var ErrBadManifest = errors.New("bad manifest")

type programSpec struct {
	Code     []any  `toml:"code"`
	Literals []any  `toml:"literals"`
	File     string `toml:"file"`
}

type file struct {
	Main    *programSpec                       `toml:"main"`
	Objects map[string]map[string]programSpec `toml:"objects"`
}

// World is the set of programs a manifest defines.
type World struct {
	// nil if the manifest has no [main]
	Main    *moovm.Program
	Objects moovm.Registry

	// Dir is the directory holding the manifest.
	Dir string
}

func Load(path string) (*World, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, wrap(fmt.Errorf("parse %s: %w", path, err))
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, wrap(err)
	}

	w := &World{
		Objects: make(moovm.Registry),
		Dir:     dir,
	}
	if f.Main != nil {
		w.Main, err = f.Main.program("main", dir)
		if err != nil {
			return nil, err
		}
	}
	for obj, verbs := range f.Objects {
		for verb, spec := range verbs {
			p, err := spec.program(obj+":"+verb, dir)
			if err != nil {
				return nil, err
			}
			w.Objects.Define(moovm.ObjID(obj), verb, p)
		}
	}

	return w, nil
}

// Registry returns the objects as a resolver.
func (w *World) Registry() moovm.Registry {
	return w.Objects
}

// Verbs returns "obj:verb" names in sorted order.
func (w *World) Verbs() []string {
	var ret []string
	for obj, verbs := range w.Objects {
		for verb := range verbs {
			ret = append(ret, string(obj)+":"+verb)
		}
	}
	slices.Sort(ret)
	return ret
}

// Program looks up "main" or an "obj:verb" name.
func (w *World) Program(name string) (*moovm.Program, error) {
	if name == "main" {
		if w.Main == nil {
			return nil, fmt.Errorf("%w: no main program", ErrBadManifest)
		}
		return w.Main, nil
	}
	obj, verb, ok := strings.Cut(name, ":")
	if !ok {
		return nil, fmt.Errorf("%w: bad verb name %q", ErrBadManifest, name)
	}
	verbs, ok := w.Objects[moovm.ObjID(obj)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", moovm.ErrUnknownObject, obj)
	}
	p, ok := verbs[verb]
	if !ok {
		return nil, fmt.Errorf("%w: %s", moovm.ErrUnknownVerb, name)
	}
	return p, nil
}

func (s programSpec) program(name string, dir string) (*moovm.Program, error) {
	if s.File != "" {
		if len(s.Code) > 0 || len(s.Literals) > 0 {
			return nil, fmt.Errorf("%w: %s: file and code both given", ErrBadManifest, name)
		}
		path := s.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, wrap(err)
		}
		defer f.Close()
		p, err := moovm.DecodeProgram(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		p.Name = name
		return p, nil
	}

	p := &moovm.Program{
		Name: name,
	}
	for i, item := range s.Code {
		op, err := parseCodeItem(item)
		if err != nil {
			return nil, fmt.Errorf("%s: code[%d]: %w", name, i, err)
		}
		p.Code = append(p.Code, op)
	}
	literals, err := moovm.FromGo(s.Literals)
	if err != nil {
		return nil, fmt.Errorf("%s: literals: %w", name, err)
	}
	p.Literals = literals.(moovm.List)
	if len(p.Literals) == 0 {
		p.Literals = nil
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

var mnemonics = lo.Map(lo.Range(int(moovm.OptimNumStart)), func(i int, _ int) string {
	return moovm.OpCode(i).String()
})

func parseCodeItem(item any) (moovm.OpCode, error) {
	switch item := item.(type) {

	case int64:
		if item < 0 || item > 255 {
			return 0, fmt.Errorf("%w: operand byte %d out of range", ErrBadManifest, item)
		}
		return moovm.OpCode(item), nil

	case string:
		if op, ok := moovm.ParseOpCode(item); ok {
			return op, nil
		}
		if numStr, ok := strings.CutPrefix(item, "NUM:"); ok {
			n, err := strconv.ParseInt(numStr, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q: %v", ErrBadManifest, item, err)
			}
			if !moovm.InOptimNumRange(n) {
				return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrBadManifest, n, moovm.OptimNumLow, moovm.OptimNumHigh)
			}
			return moovm.OptimNumOpCode(n), nil
		}
		return 0, fmt.Errorf("%w: unknown opcode %q, expecting one of %s", ErrBadManifest, item, strings.Join(mnemonics, " "))

	}
	return 0, fmt.Errorf("%w: bad code item %v (%T)", ErrBadManifest, item, item)
}

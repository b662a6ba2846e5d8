package storages

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/moo/configs"
	"github.com/reusee/moo/modes"
	"github.com/reusee/moo/moovm"
)

func TestSQLiteRegistry(t *testing.T) {
	ctx := t.Context()
	reg, err := OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer reg.Close()

	foo := &moovm.Program{
		Name:     "foo",
		Literals: []moovm.Value{moovm.List{moovm.Int(1), moovm.Str("x")}},
		Code:     []moovm.OpCode{moovm.OpImm, 0, moovm.OpRet0},
	}
	if err := reg.Define(ctx, "#1", "foo", foo); err != nil {
		t.Fatal(err)
	}

	p, err := reg.Verb(ctx, "#1", "foo")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "foo" || !slices.Equal(p.Code, foo.Code) || !moovm.Equal(p.Literals[0], foo.Literals[0]) {
		t.Fatalf("got %+v", p)
	}

	if _, err := reg.Verb(ctx, "#1", "bar"); !errors.Is(err, moovm.ErrUnknownVerb) {
		t.Fatalf("got %v", err)
	}
	if _, err := reg.Verb(ctx, "#2", "foo"); !errors.Is(err, moovm.ErrUnknownObject) {
		t.Fatalf("got %v", err)
	}

	// replace
	if err := reg.Define(ctx, "#1", "foo", &moovm.Program{
		Name: "foo2",
		Code: []moovm.OpCode{moovm.OpRet0},
	}); err != nil {
		t.Fatal(err)
	}
	p, err = reg.Verb(ctx, "#1", "foo")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "foo2" {
		t.Fatalf("got %v", p.Name)
	}

	if err := reg.Define(ctx, "#1", "bad", &moovm.Program{
		Literals: []moovm.Value{nil},
		Code:     []moovm.OpCode{moovm.OpRet0},
	}); !errors.Is(err, moovm.ErrTypeMismatch) {
		t.Fatalf("got %v", err)
	}
}

func TestSQLiteRegistryEmpty(t *testing.T) {
	ctx := t.Context()
	reg, err := OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer reg.Close()

	objects, err := reg.Objects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if objects != nil {
		t.Fatalf("got %v", objects)
	}
	if _, err := reg.Verb(ctx, "#1", "foo"); !errors.Is(err, moovm.ErrUnknownObject) {
		t.Fatalf("got %v", err)
	}

	// reads leave no transaction open
	if err := reg.Define(ctx, "#1", "foo", &moovm.Program{
		Code: []moovm.OpCode{moovm.OpRet0},
	}); err != nil {
		t.Fatal(err)
	}
	objects, err = reg.Objects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(objects, []moovm.ObjID{"#1"}) {
		t.Fatalf("got %v", objects)
	}
}

func TestSQLiteRegistryRun(t *testing.T) {
	ctx := t.Context()
	reg, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "verbs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer reg.Close()

	world := moovm.Registry{}
	world.Define("#1", "seven", &moovm.Program{
		Code: []moovm.OpCode{moovm.OptimNumOpCode(7), moovm.OpRet0},
	})
	world.Define("#2", "add", &moovm.Program{
		Literals: []moovm.Value{moovm.Str("#1"), moovm.Str("seven"), moovm.List{}},
		Code: []moovm.OpCode{
			moovm.OpImm, 0, moovm.OpImm, 1, moovm.OpImm, 2, moovm.OpCallVerb,
			moovm.OpRet0,
		},
	})
	if err := reg.DefineAll(ctx, world); err != nil {
		t.Fatal(err)
	}

	objects, err := reg.Objects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(objects, []moovm.ObjID{"#1", "#2"}) {
		t.Fatalf("got %v", objects)
	}

	v, err := moovm.New(reg, moovm.BuiltinTable{}).Run(ctx, &moovm.Program{
		Literals: []moovm.Value{moovm.ObjID("#2"), moovm.Str("add"), moovm.List{}},
		Code: []moovm.OpCode{
			moovm.OpImm, 0, moovm.OpImm, 1, moovm.OpImm, 2, moovm.OpCallVerb,
			moovm.OptimNumOpCode(1),
			moovm.OpAdd,
			moovm.OpRet,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if v != moovm.Int(1) {
		t.Fatalf("got %v", v)
	}
}

func TestModuleDBPath(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{"testdata/db.cue"}, configs.Schema)
		},
	).Call(func(
		path DBPath,
	) {
		if path != "verbs.db" {
			t.Fatalf("got %v", path)
		}
	})
}

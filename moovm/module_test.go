package moovm

import (
	"context"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/moo/configs"
	"github.com/reusee/moo/modes"
)

func TestModule(t *testing.T) {
	objects := Registry{}
	objects.Define("#1", "foo", &Program{
		Code: []OpCode{num(7), OpRet0},
	})

	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{"testdata/depth.cue"}, configs.Schema)
		},
		func() Resolver {
			return objects
		},
		func() BuiltinTable {
			return BuiltinTable{
				"double": func(_ context.Context, args Value) (Value, error) {
					return args.(List)[0].(Int) * 2, nil
				},
			}
		},
	).Call(func(
		vm *VM,
		maxDepth MaxDepth,
	) {
		if maxDepth != 4 || vm.MaxDepth != 4 {
			t.Fatalf("got %v", maxDepth)
		}
		v, err := vm.Run(t.Context(), &Program{
			Literals: []Value{Str("double"), List{Int(21)}},
			Code: []OpCode{
				OpImm, 0, OpImm, 1, OpCallBuiltin,
				OpRet,
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if v != Int(42) {
			t.Fatalf("got %v", v)
		}
	})
}

func TestModuleDefaultDepth(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
		func() Resolver {
			return Registry{}
		},
		func() BuiltinTable {
			return nil
		},
	).Call(func(
		maxDepth MaxDepth,
	) {
		if maxDepth != DefaultMaxDepth {
			t.Fatalf("got %v", maxDepth)
		}
	})
}

package builtins

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/moo/logs"
	"github.com/reusee/moo/modes"
	"github.com/reusee/moo/moovm"
)

func TestSum(t *testing.T) {
	ctx := t.Context()
	v, err := Sum(ctx, moovm.List{moovm.Int(1), moovm.Int(2), moovm.Int(3), moovm.Int(4), moovm.Int(5)})
	if err != nil {
		t.Fatal(err)
	}
	if v != moovm.Int(15) {
		t.Fatalf("got %v", v)
	}

	v, err = Sum(ctx, moovm.List{moovm.Int(1), moovm.Float(0.5)})
	if err != nil {
		t.Fatal(err)
	}
	if v != moovm.Float(1.5) {
		t.Fatalf("got %v", v)
	}

	v, err = Sum(ctx, moovm.List{})
	if err != nil || v != moovm.Int(0) {
		t.Fatalf("got %v %v", v, err)
	}

	if _, err := Sum(ctx, moovm.List{moovm.Str("a")}); !errors.Is(err, moovm.ErrTypeMismatch) {
		t.Fatalf("got %v", err)
	}
	if _, err := Sum(ctx, moovm.Int(1)); !errors.Is(err, moovm.ErrTypeMismatch) {
		t.Fatalf("got %v", err)
	}
}

func TestLength(t *testing.T) {
	ctx := t.Context()
	for _, c := range []struct {
		args moovm.Value
		want moovm.Int
	}{
		{moovm.List{moovm.List{moovm.Int(1), moovm.Int(2)}}, 2},
		{moovm.List{moovm.Str("abcd")}, 4},
		{moovm.List{moovm.Str("héllo")}, 5},
		{moovm.List{moovm.List{}}, 0},
	} {
		got, err := Length(ctx, c.args)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Fatalf("%v: got %v", c.args, got)
		}
	}
	for _, args := range []moovm.Value{
		moovm.Bool(true),
		moovm.Str("abc"),
		moovm.List{},
		moovm.List{moovm.Int(5)},
		moovm.List{moovm.Int(1), moovm.Int(2)},
		moovm.List{moovm.Str("a"), moovm.Str("b")},
	} {
		if _, err := Length(ctx, args); !errors.Is(err, moovm.ErrTypeMismatch) {
			t.Fatalf("%v: got %v", args, err)
		}
	}
}

func TestStr(t *testing.T) {
	got, err := Str(t.Context(), moovm.List{
		moovm.Str("a"),
		moovm.Int(1),
		moovm.ObjID("#2"),
		moovm.List{moovm.Str("x")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != moovm.Str(`a1#2{"x"}`) {
		t.Fatalf("got %v", got)
	}
	got, err = Str(t.Context(), moovm.Float(2))
	if err != nil || got != moovm.Str("2.0") {
		t.Fatalf("got %v %v", got, err)
	}
}

func TestTable(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() logs.Writer {
			return buf
		},
	).Call(func(
		table moovm.BuiltinTable,
	) {
		for _, name := range []string{"log", "notify", "sum", "length", "str"} {
			if _, ok := table.Builtin(name); !ok {
				t.Fatalf("%s not defined", name)
			}
		}

		vm := moovm.New(moovm.Registry{}, table)
		v, err := vm.Run(t.Context(), &moovm.Program{
			Literals: []moovm.Value{
				moovm.Str("notify"),
				moovm.List{moovm.Str("hello")},
			},
			Code: []moovm.OpCode{
				moovm.OpImm, 0, moovm.OpImm, 1, moovm.OpCallBuiltin,
				moovm.OpRet,
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if v != moovm.Int(0) {
			t.Fatalf("got %v", v)
		}
		if !strings.Contains(buf.String(), `msg=notify args="{\"hello\"}"`) {
			t.Fatalf("got %s", buf.String())
		}
	})
}

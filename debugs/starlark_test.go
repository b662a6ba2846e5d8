package debugs

import (
	"testing"

	"github.com/reusee/moo/moovm"
	"go.starlark.net/starlark"
)

func TestToStarlarkValue(t *testing.T) {
	type frame struct {
		Label string
		IP    int
		stack []int
	}

	listOf := func(elems ...starlark.Value) starlark.Value {
		return starlark.NewList(elems)
	}
	dictOf := func(kvs ...starlark.Value) starlark.Value {
		d := starlark.NewDict(len(kvs) / 2)
		for i := 0; i < len(kvs); i += 2 {
			d.SetKey(kvs[i], kvs[i+1])
		}
		return d
	}

	testCases := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"Int", moovm.Int(42), starlark.MakeInt(42)},
		{"Float", moovm.Float(1.5), starlark.Float(1.5)},
		{"Str", moovm.Str("foo"), starlark.String("foo")},
		{"Bool", moovm.Bool(true), starlark.True},
		{"ObjID", moovm.ObjID("#1"), starlark.String("#1")},
		{"List", moovm.List{moovm.Int(1), moovm.List{moovm.Str("x")}},
			listOf(starlark.MakeInt(1), listOf(starlark.String("x")))},
		{"OpCode", moovm.OpCallVerb, starlark.String("CALL_VERB")},
		{"value slice", []moovm.Value{moovm.Int(1), moovm.Bool(false)},
			listOf(starlark.MakeInt(1), starlark.False)},
		{"bytes", []byte("abc"), starlark.Bytes("abc")},
		{"string", "hello", starlark.String("hello")},
		{"int", 42, starlark.MakeInt(42)},
		{"int8", int8(42), starlark.MakeInt(42)},
		{"uint16", uint16(42), starlark.MakeInt(42)},
		{"float32", float32(0.5), starlark.Float(0.5)},
		{"[]any", []any{1, "a", true},
			listOf(starlark.MakeInt(1), starlark.String("a"), starlark.True)},
		{"map[string]any", map[string]any{"a": 1, "b": moovm.Str("c")},
			dictOf(starlark.String("a"), starlark.MakeInt(1), starlark.String("b"), starlark.String("c"))},
		{"map[int]bool", map[int]bool{1: true},
			dictOf(starlark.MakeInt(1), starlark.True)},
		{"struct", frame{Label: "MAIN", IP: 3},
			dictOf(starlark.String("Label"), starlark.String("MAIN"), starlark.String("IP"), starlark.MakeInt(3))},
		{"pointer to struct", &frame{Label: "foo"},
			dictOf(starlark.String("Label"), starlark.String("foo"), starlark.String("IP"), starlark.MakeInt(0))},
		{"nil pointer", (*frame)(nil), starlark.None},
		{"starlark value", starlark.String("x"), starlark.String("x")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := toStarlarkValue(tc.input)
			equal, err := starlark.Equal(actual, tc.expected)
			if err != nil {
				t.Fatalf("comparison failed: %v", err)
			}
			if !equal {
				t.Errorf("toStarlarkValue(%#v) = %v, want %v", tc.input, actual, tc.expected)
			}
		})
	}

	t.Run("panic on unsupported type", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("toStarlarkValue did not panic on unsupported type")
			}
		}()
		toStarlarkValue(make(chan bool))
	})
}

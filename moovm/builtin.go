package moovm

import "context"

// Builtin is a host function called by CALL_BI. args is the value popped as the
// argument list, usually a List.
type Builtin func(ctx context.Context, args Value) (Value, error)

type Builtins interface {
	Builtin(name string) (Builtin, bool)
}

type BuiltinTable map[string]Builtin

var _ Builtins = BuiltinTable(nil)

func (t BuiltinTable) Builtin(name string) (Builtin, bool) {
	fn, ok := t[name]
	return fn, ok
}

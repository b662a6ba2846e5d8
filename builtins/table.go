package builtins

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/reusee/moo/logs"
	"github.com/reusee/moo/moovm"
	"github.com/samber/lo"
)

// Table provides the host functions programs reach with CALL_BI.
func (Module) Table(
	logger logs.Logger,
) moovm.BuiltinTable {
	return moovm.BuiltinTable{
		"log":    logBuiltin(logger, "log"),
		"notify": logBuiltin(logger, "notify"),
		"sum":    Sum,
		"length": Length,
		"str":    Str,
	}
}

func logBuiltin(logger logs.Logger, msg string) moovm.Builtin {
	return func(ctx context.Context, args moovm.Value) (moovm.Value, error) {
		logger.InfoContext(ctx, msg, "args", args.String())
		return moovm.Int(0), nil
	}
}

// Sum adds the numbers of a list. The result is an Int unless some element is
// a Float.
func Sum(_ context.Context, args moovm.Value) (moovm.Value, error) {
	list, ok := args.(moovm.List)
	if !ok {
		return nil, fmt.Errorf("%w: sum of %s", moovm.ErrTypeMismatch, moovm.Kind(args))
	}
	var i moovm.Int
	var f moovm.Float
	var isFloat bool
	for _, v := range list {
		switch v := v.(type) {
		case moovm.Int:
			i += v
		case moovm.Float:
			f += v
			isFloat = true
		default:
			return nil, fmt.Errorf("%w: sum of %s element", moovm.ErrTypeMismatch, moovm.Kind(v))
		}
	}
	if isFloat {
		return moovm.Float(i) + f, nil
	}
	return i, nil
}

// Length takes its argument list as a single list or string and returns its
// element count or rune count.
func Length(_ context.Context, args moovm.Value) (moovm.Value, error) {
	list, ok := args.(moovm.List)
	if !ok || len(list) != 1 {
		return nil, fmt.Errorf("%w: length expects one argument, got %s", moovm.ErrTypeMismatch, args)
	}
	switch v := list[0].(type) {
	case moovm.List:
		return moovm.Int(len(v)), nil
	case moovm.Str:
		return moovm.Int(utf8.RuneCountInString(string(v))), nil
	}
	return nil, fmt.Errorf("%w: length of %s", moovm.ErrTypeMismatch, moovm.Kind(list[0]))
}

// Str concatenates its arguments, strings as their content and everything
// else in literal form.
func Str(_ context.Context, args moovm.Value) (moovm.Value, error) {
	list, ok := args.(moovm.List)
	if !ok {
		list = moovm.List{args}
	}
	return moovm.Str(strings.Join(lo.Map(list, func(v moovm.Value, _ int) string {
		if s, ok := v.(moovm.Str); ok {
			return string(s)
		}
		return v.String()
	}), "")), nil
}

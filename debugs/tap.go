package debugs

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/reusee/moo/logs"
	"github.com/reusee/moo/moovm"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a Starlark REPL on stdin with globals bound.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, Globals(globals))
	}
}

func Globals(globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict)
	for name, value := range globals {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}

// TaskGlobals describes t for a tap: "frames" lists the frame chain, current
// frame first, "error" holds the failure, and disasm(i) disassembles the
// program of frame i.
func TaskGlobals(t *moovm.Task) map[string]any {
	frames := t.Frames()
	var frameValues []any
	for _, f := range frames {
		frameValues = append(frameValues, map[string]any{
			"label":   f.Label,
			"program": f.Program.Name,
			"ip":      f.IP,
			"depth":   f.Depth,
			"stack":   f.Stack,
			"object":  f.Object,
			"args":    f.Args,
		})
	}

	ret := map[string]any{
		"frames": frameValues,
		"done":   t.Done,
		"result": t.Result,
		"disasm": func(i int) string {
			if i < 0 || i >= len(frames) {
				return ""
			}
			buf := new(strings.Builder)
			_ = moovm.Disassemble(buf, frames[i].Program)
			return buf.String()
		},
	}
	if err := t.Err(); err != nil {
		ret["error"] = err.Error()
	} else {
		ret["error"] = nil
	}
	return ret
}

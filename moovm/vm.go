package moovm

import (
	"context"
	"log/slog"

	"github.com/reusee/moo/logs"
)

// VM executes programs against a verb resolver and a builtin table. It holds no
// per-run state, so one VM may serve concurrent runs.
type VM struct {
	objects  Resolver
	builtins Builtins

	// MaxDepth bounds the frame chain length; zero means unbounded.
	MaxDepth int
	Logger   logs.Logger
}

func New(objects Resolver, builtins Builtins) *VM {
	return &VM{
		objects:  objects,
		builtins: builtins,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Run executes p from a fresh root frame and returns the value it answers.
// Suspension points are resumed immediately after checking ctx.
func (v *VM) Run(ctx context.Context, p *Program) (Value, error) {
	task := v.Start(p)
	for !task.Done {
		if err := v.Resume(ctx, task); err != nil {
			return nil, err
		}
	}
	return task.Result, nil
}

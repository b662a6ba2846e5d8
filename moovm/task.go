package moovm

import (
	"context"
	"fmt"
)

// Task is a frame chain in progress. Current is the frame that runs next; its
// Caller links lead back to the root frame.
type Task struct {
	Current *Frame
	Done    bool
	Result  Value

	err error
}

func (v *VM) Start(p *Program) *Task {
	return &Task{
		Current: newFrame(p, "MAIN", nil),
	}
}

// Resume drives t until it produces a result, executes SUSPEND or fails. A task
// that failed keeps returning the same error.
func (v *VM) Resume(ctx context.Context, t *Task) error {
	if t.err != nil {
		return t.err
	}
	if t.Done {
		return nil
	}
	if err := v.drive(ctx, t); err != nil {
		t.err = err
		v.Logger.DebugContext(ctx, "task failed", "error", err)
		return err
	}
	return nil
}

func (v *VM) drive(ctx context.Context, t *Task) error {
	for t.Current != nil {
		if err := ctx.Err(); err != nil {
			return newRunError(err, t.Current)
		}

		f := t.Current
		s, err := v.exec(ctx, f)
		if err != nil {
			return newRunError(err, f)
		}

		switch s.kind {

		case stepReturned:
			if f.Caller != nil {
				return newRunError(ErrNestedReturn, f)
			}
			t.finish(s.value)
			return nil

		case stepResumed:
			t.Current = f.Caller
			if t.Current == nil {
				t.finish(s.value)
				return nil
			}
			t.Current.push(s.value)
			v.Logger.DebugContext(ctx, "verb returned",
				"verb", f.Label,
				"to", t.Current.Label,
			)

		case stepCall:
			if v.MaxDepth > 0 && s.frame.Depth > v.MaxDepth {
				return newRunError(fmt.Errorf("%w: limit %d", ErrCallDepth, v.MaxDepth), f)
			}
			v.Logger.DebugContext(ctx, "verb call",
				"verb", s.frame.Label,
				"from", f.Label,
				"depth", s.frame.Depth,
			)
			t.Current = s.frame

		case stepSuspended:
			v.Logger.DebugContext(ctx, "suspended",
				"frame", f.Label,
				"ip", f.IP,
			)
			return nil

		}
	}

	return newRunError(fmt.Errorf("%w: no RET or RET0 reached", ErrMalformedProgram), nil)
}

func (t *Task) finish(v Value) {
	t.Current = nil
	t.Done = true
	t.Result = v
}

// Err returns the error that stopped the task, if any.
func (t *Task) Err() error {
	return t.err
}

// Frames returns the frame chain, current frame first.
func (t *Task) Frames() []*Frame {
	var ret []*Frame
	for f := t.Current; f != nil; f = f.Caller {
		ret = append(ret, f)
	}
	return ret
}

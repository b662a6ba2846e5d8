package moovm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidOpCode    = errors.New("invalid opcode")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrUnknownBuiltin   = errors.New("unknown builtin")
	ErrUnknownObject    = errors.New("unknown object")
	ErrUnknownVerb      = errors.New("unknown verb")
	ErrMalformedProgram = errors.New("malformed program")
	ErrNestedReturn     = errors.New("RET from a called verb")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrCallDepth        = errors.New("call depth exceeded")
)

// TraceEntry locates one frame of the chain at the time of an error.
type TraceEntry struct {
	Label string
	IP    int
}

// RunError is a fatal run failure together with the frame chain it happened in,
// innermost frame first.
type RunError struct {
	Err   error
	Trace []TraceEntry
}

func (e *RunError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	for _, entry := range e.Trace {
		fmt.Fprintf(&b, "\n\tat %s:%d", entry.Label, entry.IP)
	}
	return b.String()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func newRunError(err error, f *Frame) *RunError {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr
	}
	ret := &RunError{
		Err: err,
	}
	for ; f != nil; f = f.Caller {
		ret.Trace = append(ret.Trace, TraceEntry{
			Label: f.Label,
			IP:    f.IP,
		})
	}
	return ret
}

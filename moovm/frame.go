package moovm

// Frame is one activation of a Program. Caller links back to the frame that
// issued the verb call; the chain is owned by the Task driving it.
type Frame struct {
	Program *Program
	IP      int
	Stack   []Value
	Caller  *Frame
	Label   string
	Depth   int

	// set for verb frames
	Object ObjID
	Args   Value
}

func newFrame(p *Program, label string, caller *Frame) *Frame {
	f := &Frame{
		Program: p,
		Label:   label,
		Caller:  caller,
		Stack:   make([]Value, 0, 8),
	}
	if caller != nil {
		f.Depth = caller.Depth + 1
	}
	return f
}

func (f *Frame) push(v Value) {
	f.Stack = append(f.Stack, v)
}

func (f *Frame) pop() (Value, error) {
	n := len(f.Stack)
	if n == 0 {
		return nil, ErrStackUnderflow
	}
	v := f.Stack[n-1]
	f.Stack[n-1] = nil
	f.Stack = f.Stack[:n-1]
	return v, nil
}

// pop2 pops the right-hand operand, then the left-hand one.
func (f *Frame) pop2() (lhs, rhs Value, err error) {
	if len(f.Stack) < 2 {
		return nil, nil, ErrStackUnderflow
	}
	rhs, _ = f.pop()
	lhs, _ = f.pop()
	return
}

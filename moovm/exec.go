package moovm

import (
	"context"
	"fmt"
)

type stepKind uint8

const (
	// RET: the value answers the whole run.
	stepReturned stepKind = iota
	// RET0: the value goes to the caller, which continues.
	stepResumed
	// CALL_VERB: frame must run next.
	stepCall
	// SUSPEND
	stepSuspended
)

type step struct {
	kind  stepKind
	value Value
	frame *Frame
}

// exec runs f from its instruction pointer until it returns, calls a verb or
// suspends. Verb calls never recurse: the callee frame is handed back to the
// driver with f.IP already past the call.
func (v *VM) exec(ctx context.Context, f *Frame) (step, error) {
	code := f.Program.Code
	literals := f.Program.Literals

	for {
		if f.IP >= len(code) {
			return step{}, fmt.Errorf("%w: no terminating instruction reached", ErrMalformedProgram)
		}
		op := code[f.IP]

		switch op {

		case OpNop:

		case OpImm:
			if f.IP+1 >= len(code) {
				return step{}, fmt.Errorf("%w: IMM without operand", ErrMalformedProgram)
			}
			idx := int(code[f.IP+1])
			if idx >= len(literals) {
				return step{}, fmt.Errorf("%w: literal index %d out of range", ErrMalformedProgram, idx)
			}
			if literals[idx] == nil {
				return step{}, fmt.Errorf("%w: literal %d is nil", ErrMalformedProgram, idx)
			}
			f.push(literals[idx])
			f.IP++

		case OpPop:
			if _, err := f.pop(); err != nil {
				return step{}, err
			}

		case OpEq, OpNe:
			lhs, rhs, err := f.pop2()
			if err != nil {
				return step{}, err
			}
			eq := Equal(lhs, rhs)
			if op == OpNe {
				eq = !eq
			}
			f.push(Bool(eq))

		case OpIn:
			lhs, rhs, err := f.pop2()
			if err != nil {
				return step{}, err
			}
			ok, err := Contains(rhs, lhs)
			if err != nil {
				return step{}, err
			}
			f.push(Bool(ok))

		case OpGt, OpLt, OpGe, OpLe:
			lhs, rhs, err := f.pop2()
			if err != nil {
				return step{}, err
			}
			res, err := compare(op, lhs, rhs)
			if err != nil {
				return step{}, err
			}
			f.push(Bool(res))

		case OpAdd, OpMin, OpMul, OpDiv, OpMod:
			lhs, rhs, err := f.pop2()
			if err != nil {
				return step{}, err
			}
			res, err := arith(op, lhs, rhs)
			if err != nil {
				return step{}, err
			}
			f.push(res)

		case OpRet:
			ret, err := f.pop()
			if err != nil {
				return step{}, err
			}
			return step{
				kind:  stepReturned,
				value: ret,
			}, nil

		case OpRet0:
			return step{
				kind:  stepResumed,
				value: Int(0),
			}, nil

		case OpCallBuiltin:
			nameValue, args, err := f.pop2()
			if err != nil {
				return step{}, err
			}
			name, ok := nameValue.(Str)
			if !ok {
				return step{}, fmt.Errorf("%w: builtin name is %s", ErrTypeMismatch, Kind(nameValue))
			}
			fn, ok := v.builtins.Builtin(string(name))
			if !ok {
				return step{}, fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
			}
			ret, err := fn(ctx, args)
			if err != nil {
				return step{}, fmt.Errorf("builtin %s: %w", name, err)
			}
			if ret == nil {
				return step{}, fmt.Errorf("%w: builtin %s returned nil", ErrTypeMismatch, name)
			}
			f.push(ret)

		case OpCallVerb:
			if len(f.Stack) < 3 {
				return step{}, ErrStackUnderflow
			}
			args, _ := f.pop()
			verbValue, _ := f.pop()
			objValue, _ := f.pop()
			f.IP++

			verb, ok := verbValue.(Str)
			if !ok {
				return step{}, fmt.Errorf("%w: verb name is %s", ErrTypeMismatch, Kind(verbValue))
			}
			var obj ObjID
			switch o := objValue.(type) {
			case ObjID:
				obj = o
			case Str:
				obj = ObjID(o)
			default:
				return step{}, fmt.Errorf("%w: object id is %s", ErrTypeMismatch, Kind(objValue))
			}
			p, err := v.objects.Verb(ctx, obj, string(verb))
			if err != nil {
				return step{}, err
			}
			if p == nil {
				return step{}, fmt.Errorf("%w: %s:%s", ErrUnknownVerb, obj, verb)
			}

			callee := newFrame(p, string(verb), f)
			callee.Object = obj
			callee.Args = args
			return step{
				kind:  stepCall,
				frame: callee,
			}, nil

		case OpSuspend:
			f.IP++
			return step{
				kind: stepSuspended,
			}, nil

		default:
			if !IsOptimNum(op) {
				return step{}, fmt.Errorf("%w: %d", ErrInvalidOpCode, byte(op))
			}
			f.push(Int(OptimNumValue(op)))
		}

		f.IP++
	}
}

package moovm

import (
	"fmt"
	"math"
	"slices"
)

func compare(op OpCode, lhs, rhs Value) (bool, error) {
	var c int
	switch x := lhs.(type) {
	case Int:
		switch y := rhs.(type) {
		case Int:
			c = cmpOrdered(x, y)
		case Float:
			c = cmpOrdered(Float(x), y)
		default:
			return false, mismatch(op, lhs, rhs)
		}
	case Float:
		switch y := rhs.(type) {
		case Int:
			c = cmpOrdered(x, Float(y))
		case Float:
			c = cmpOrdered(x, y)
		default:
			return false, mismatch(op, lhs, rhs)
		}
	case Str:
		y, ok := rhs.(Str)
		if !ok {
			return false, mismatch(op, lhs, rhs)
		}
		c = cmpOrdered(x, y)
	default:
		return false, mismatch(op, lhs, rhs)
	}

	switch op {
	case OpGt:
		return c > 0, nil
	case OpLt:
		return c < 0, nil
	case OpGe:
		return c >= 0, nil
	case OpLe:
		return c <= 0, nil
	}
	return false, fmt.Errorf("%w: %v is not a comparison", ErrInvalidOpCode, op)
}

func cmpOrdered[T Int | Float | Str](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func arith(op OpCode, lhs, rhs Value) (Value, error) {
	switch x := lhs.(type) {

	case Int:
		switch y := rhs.(type) {
		case Int:
			return arithInt(op, x, y)
		case Float:
			return arithFloat(op, Float(x), y)
		}

	case Float:
		switch y := rhs.(type) {
		case Int:
			return arithFloat(op, x, Float(y))
		case Float:
			return arithFloat(op, x, y)
		}

	case Str:
		if y, ok := rhs.(Str); ok && op == OpAdd {
			return x + y, nil
		}

	case List:
		if y, ok := rhs.(List); ok && op == OpAdd {
			return slices.Concat(x, y), nil
		}

	}
	return nil, mismatch(op, lhs, rhs)
}

func arithInt(op OpCode, x, y Int) (Value, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpMin:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		return x / y, nil
	case OpMod:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		return x % y, nil
	}
	return nil, fmt.Errorf("%w: %v is not arithmetic", ErrInvalidOpCode, op)
}

func arithFloat(op OpCode, x, y Float) (Value, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpMin:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		return x / y, nil
	case OpMod:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		return Float(math.Mod(float64(x), float64(y))), nil
	}
	return nil, fmt.Errorf("%w: %v is not arithmetic", ErrInvalidOpCode, op)
}

func mismatch(op OpCode, lhs, rhs Value) error {
	return fmt.Errorf("%w: %s %v %s", ErrTypeMismatch, Kind(lhs), op, Kind(rhs))
}

package moovm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a runtime value. The set of implementations is closed: Int, Float,
// Str, Bool, List and ObjID.
type Value interface {
	fmt.Stringer
	isValue()
}

type (
	Int   int64
	Float float64
	Str   string
	Bool  bool
	List  []Value
	ObjID string
)

func (Int) isValue()   {}
func (Float) isValue() {}
func (Str) isValue()   {}
func (Bool) isValue()  {}
func (List) isValue()  {}
func (ObjID) isValue() {}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func (s Str) String() string {
	return strconv.Quote(string(s))
}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		if v == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(v.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (o ObjID) String() string {
	return string(o)
}

// Kind returns the name of the value's type as used in error messages.
func Kind(v Value) string {
	switch v.(type) {
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Bool:
		return "bool"
	case List:
		return "list"
	case ObjID:
		return "obj"
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

// Equal reports deep equality. Int and Float compare by numeric value, and a
// NaN Float equals any other NaN Float.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Int:
			return x == y
		case Float:
			return Float(x) == y
		}
	case Float:
		switch y := b.(type) {
		case Int:
			return x == Float(y)
		case Float:
			return x == y || (math.IsNaN(float64(x)) && math.IsNaN(float64(y)))
		}
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case ObjID:
		y, ok := b.(ObjID)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	return false
}

// Contains reports whether elem is a member of coll. Lists test elements by
// Equal; strings test for a substring.
func Contains(coll, elem Value) (bool, error) {
	switch c := coll.(type) {
	case List:
		for _, v := range c {
			if Equal(v, elem) {
				return true, nil
			}
		}
		return false, nil
	case Str:
		s, ok := elem.(Str)
		if !ok {
			return false, fmt.Errorf("%w: %s in str", ErrTypeMismatch, Kind(elem))
		}
		return strings.Contains(string(c), string(s)), nil
	}
	return false, fmt.Errorf("%w: membership in %s", ErrTypeMismatch, Kind(coll))
}

// FromGo converts plain Go data, as produced by decoders, into a Value.
func FromGo(v any) (Value, error) {
	switch v := v.(type) {
	case Value:
		return v, nil
	case int:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int", ErrTypeMismatch, v)
		}
		return Int(v), nil
	case float64:
		return Float(v), nil
	case string:
		return Str(v), nil
	case bool:
		return Bool(v), nil
	case []any:
		l := make(List, 0, len(v))
		for _, e := range v {
			ev, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			l = append(l, ev)
		}
		return l, nil
	}
	return nil, fmt.Errorf("%w: unsupported literal type %T", ErrTypeMismatch, v)
}

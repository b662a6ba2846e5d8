package moovm

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("moovm: create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type valueKind uint8

const (
	kindInt valueKind = iota + 1
	kindFloat
	kindStr
	kindBool
	kindList
	kindObj
)

type wireValue struct {
	Kind  valueKind   `cbor:"k"`
	Int   int64       `cbor:"i,omitempty"`
	Float float64     `cbor:"f,omitempty"`
	Str   string      `cbor:"s,omitempty"`
	Bool  bool        `cbor:"b,omitempty"`
	List  []wireValue `cbor:"l,omitempty"`
}

type wireProgram struct {
	Name     string      `cbor:"name"`
	Code     []byte      `cbor:"code"`
	Literals []wireValue `cbor:"literals"`
}

func toWire(v Value) (wireValue, error) {
	switch v := v.(type) {
	case Int:
		return wireValue{Kind: kindInt, Int: int64(v)}, nil
	case Float:
		return wireValue{Kind: kindFloat, Float: float64(v)}, nil
	case Str:
		return wireValue{Kind: kindStr, Str: string(v)}, nil
	case Bool:
		return wireValue{Kind: kindBool, Bool: bool(v)}, nil
	case ObjID:
		return wireValue{Kind: kindObj, Str: string(v)}, nil
	case List:
		ret := wireValue{
			Kind: kindList,
			List: make([]wireValue, 0, len(v)),
		}
		for _, e := range v {
			w, err := toWire(e)
			if err != nil {
				return wireValue{}, err
			}
			ret.List = append(ret.List, w)
		}
		return ret, nil
	}
	return wireValue{}, fmt.Errorf("%w: cannot encode %s", ErrTypeMismatch, Kind(v))
}

func (w wireValue) value() (Value, error) {
	switch w.Kind {
	case kindInt:
		return Int(w.Int), nil
	case kindFloat:
		return Float(w.Float), nil
	case kindStr:
		return Str(w.Str), nil
	case kindBool:
		return Bool(w.Bool), nil
	case kindObj:
		return ObjID(w.Str), nil
	case kindList:
		ret := make(List, 0, len(w.List))
		for _, e := range w.List {
			v, err := e.value()
			if err != nil {
				return nil, err
			}
			ret = append(ret, v)
		}
		return ret, nil
	}
	return nil, fmt.Errorf("%w: unknown value kind %d", ErrMalformedProgram, w.Kind)
}

// MarshalProgram encodes p as canonical CBOR.
func MarshalProgram(p *Program) ([]byte, error) {
	w := wireProgram{
		Name: p.Name,
		Code: make([]byte, len(p.Code)),
	}
	for i, op := range p.Code {
		w.Code[i] = byte(op)
	}
	for _, lit := range p.Literals {
		wv, err := toWire(lit)
		if err != nil {
			return nil, err
		}
		w.Literals = append(w.Literals, wv)
	}
	return cborEncMode.Marshal(w)
}

// UnmarshalProgram decodes and validates a program encoded by MarshalProgram.
func UnmarshalProgram(data []byte) (*Program, error) {
	var w wireProgram
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("moovm: unmarshal program: %w", err)
	}
	p := &Program{
		Name: w.Name,
		Code: make([]OpCode, len(w.Code)),
	}
	for i, b := range w.Code {
		p.Code[i] = OpCode(b)
	}
	for _, wv := range w.Literals {
		v, err := wv.value()
		if err != nil {
			return nil, err
		}
		p.Literals = append(p.Literals, v)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func EncodeProgram(w io.Writer, p *Program) error {
	data, err := MarshalProgram(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func DecodeProgram(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalProgram(data)
}

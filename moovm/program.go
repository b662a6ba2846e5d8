package moovm

import "fmt"

// Program is an assembled verb body: opcodes with inline operand bytes and the
// literal pool IMM indexes into. A Program must not be modified once it is
// handed to a VM.
type Program struct {
	Name     string
	Code     []OpCode
	Literals []Value
}

// Validate checks that every literal is set, that every instruction decodes,
// that every IMM has an operand addressing the literal pool, and that the code
// ends in RET or RET0.
func (p *Program) Validate() error {
	if len(p.Code) == 0 {
		return fmt.Errorf("%w: %s: empty code", ErrMalformedProgram, p.Name)
	}
	for i, lit := range p.Literals {
		if lit == nil {
			return fmt.Errorf("%w: %s: literal %d is nil", ErrMalformedProgram, p.Name, i)
		}
	}
	var last OpCode
	for ip := 0; ip < len(p.Code); ip++ {
		op := p.Code[ip]
		last = op
		if IsOptimNum(op) {
			continue
		}
		switch op {
		case OpImm:
			ip++
			if ip >= len(p.Code) {
				return fmt.Errorf("%w: %s: IMM at %d without operand", ErrMalformedProgram, p.Name, ip-1)
			}
			if idx := int(p.Code[ip]); idx >= len(p.Literals) {
				return fmt.Errorf("%w: %s: literal index %d out of range at %d", ErrMalformedProgram, p.Name, idx, ip-1)
			}
		case OpExtended:
			return fmt.Errorf("%w: %s: EXTENDED at %d", ErrInvalidOpCode, p.Name, ip)
		}
	}
	if last != OpRet && last != OpRet0 {
		return fmt.Errorf("%w: %s: no terminating RET or RET0", ErrMalformedProgram, p.Name)
	}
	return nil
}

package moovm

import (
	"fmt"
	"io"
)

// Disassemble writes one line per instruction of p.
func Disassemble(w io.Writer, p *Program) error {
	if _, err := fmt.Fprintf(w, "%s: %d literals\n", p.Name, len(p.Literals)); err != nil {
		return err
	}
	for ip := 0; ip < len(p.Code); ip++ {
		op := p.Code[ip]
		var err error
		if op == OpImm && ip+1 < len(p.Code) {
			idx := int(p.Code[ip+1])
			lit := "?"
			if idx < len(p.Literals) {
				lit = p.Literals[idx].String()
			}
			_, err = fmt.Fprintf(w, "%4d  %-10s %-4d ; %s\n", ip, op, idx, lit)
			ip++
		} else {
			_, err = fmt.Fprintf(w, "%4d  %s\n", ip, op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

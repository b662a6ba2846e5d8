package moovm

import "fmt"

type OpCode byte

const (
	OpEq OpCode = iota
	OpNe
	OpGt
	OpLt
	OpGe
	OpLe
	OpIn
	OpAdd
	OpMin
	OpMul
	OpDiv
	OpMod
	OpPop
	OpImm
	OpRet
	OpRet0
	OpCallBuiltin
	OpCallVerb
	OpNop
	OpSuspend
	OpExtended
	OptimNumStart
	LastOpCode OpCode = 255
)

const (
	OptimNumLow  = -10
	OptimNumHigh = int64(LastOpCode) - int64(OptimNumStart) + OptimNumLow
)

var opNames = [...]string{
	OpEq:          "EQ",
	OpNe:          "NE",
	OpGt:          "GT",
	OpLt:          "LT",
	OpGe:          "GE",
	OpLe:          "LE",
	OpIn:          "IN",
	OpAdd:         "ADD",
	OpMin:         "MIN",
	OpMul:         "MUL",
	OpDiv:         "DIV",
	OpMod:         "MOD",
	OpPop:         "POP",
	OpImm:         "IMM",
	OpRet:         "RET",
	OpRet0:        "RET0",
	OpCallBuiltin: "CALL_BI",
	OpCallVerb:    "CALL_VERB",
	OpNop:         "NOP",
	OpSuspend:     "SUSPEND",
	OpExtended:    "EXTENDED",
}

// ParseOpCode returns the opcode for a mnemonic as printed by String.
func ParseOpCode(name string) (OpCode, bool) {
	for i, n := range opNames {
		if n == name {
			return OpCode(i), true
		}
	}
	return 0, false
}

func (o OpCode) String() string {
	if IsOptimNum(o) {
		return fmt.Sprintf("NUM(%d)", OptimNumValue(o))
	}
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("OP(%d)", byte(o))
}

// Operands returns the number of inline operand bytes following the opcode.
func (o OpCode) Operands() int {
	if o == OpImm {
		return 1
	}
	return 0
}

func IsOptimNum(o OpCode) bool {
	return o >= OptimNumStart
}

func OptimNumValue(o OpCode) int64 {
	return int64(o) - int64(OptimNumStart) + OptimNumLow
}

func InOptimNumRange(i int64) bool {
	return i >= OptimNumLow && i <= OptimNumHigh
}

// OptimNumOpCode encodes a small integer as an opcode. It panics if i is not in
// [OptimNumLow, OptimNumHigh]; such values belong in the literal pool.
func OptimNumOpCode(i int64) OpCode {
	if !InOptimNumRange(i) {
		panic(fmt.Errorf("%d out of optimized number range", i))
	}
	return OpCode(int64(OptimNumStart) + i - OptimNumLow)
}

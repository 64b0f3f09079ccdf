// Package instruction contains the Intel 8080 instruction table: one entry per
// opcode byte giving the mnemonic text, the instruction size and the kind of
// operand that follows the opcode.
package instruction

import (
	"fmt"
	"strings"
)

// Count is the number of opcodes in a complete instruction table.
const Count = 256

// OperandKind defines how the operand bytes of an instruction are printed.
type OperandKind uint8

const (
	// NoOperand is used for single byte instructions.
	NoOperand OperandKind = iota
	// Immediate operands are printed with a '#' prefix.
	Immediate
	// Address operands are printed with a '$' prefix, this includes I/O ports.
	Address
)

// Prefix returns the listing prefix that is printed before the operand value.
func (k OperandKind) Prefix() string {
	switch k {
	case Immediate:
		return "#"
	case Address:
		return "$"
	default:
		return ""
	}
}

func (k OperandKind) String() string {
	switch k {
	case NoOperand:
		return "none"
	case Immediate:
		return "imm"
	case Address:
		return "addr"
	default:
		return fmt.Sprintf("OperandKind(%d)", uint8(k))
	}
}

// Entry describes a single opcode.
type Entry struct {
	Mnemonic string      // mnemonic text, including any padding and register operands
	Size     int         // instruction size in bytes including the opcode, 1-3
	Operand  OperandKind // kind of the operand following the opcode
}

// Token returns the first whitespace delimited token of the mnemonic,
// which is the instruction name without register operands.
func (e Entry) Token() string {
	fields := strings.Fields(e.Mnemonic)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Table maps every opcode byte to its instruction entry.
// A table returned by the loader functions is complete and must not be modified.
type Table struct {
	entries [Count]Entry
}

// Entry returns the entry for the given opcode.
func (t *Table) Entry(opcode byte) Entry {
	return t.entries[opcode]
}

// Entries returns a copy of all entries indexed by opcode.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, Count)
	copy(entries, t.entries[:])
	return entries
}

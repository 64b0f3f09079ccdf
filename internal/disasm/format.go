package disasm

import (
	"fmt"
	"strconv"

	"github.com/retroenv/disasm8080/internal/instruction"
)

// AddressDigits returns the width of the address column for an image of the
// given length. The width is the number of decimal digits of the length, the
// address itself is printed in hex.
func AddressDigits(length int) int {
	return len(strconv.Itoa(length))
}

// FormatLine returns the listing line of an instruction. The mnemonic is
// printed as stored in the table, it contains any padding between the
// instruction name and the operand. An entry with operand bytes but without
// an operand kind gets the kind derived from its instruction name.
func FormatLine(address, digits int, entry instruction.Entry, operand uint16) string {
	kind := entry.Operand
	if kind == instruction.NoOperand && entry.Size > 1 {
		kind = instruction.DeriveOperandKind(entry)
	}

	switch entry.Size {
	case 2:
		return fmt.Sprintf("%0*x %s%s%02x", digits, address, entry.Mnemonic, kind.Prefix(), operand)
	case 3:
		return fmt.Sprintf("%0*x %s%s%04x", digits, address, entry.Mnemonic, kind.Prefix(), operand)
	default:
		return fmt.Sprintf("%0*x %s", digits, address, entry.Mnemonic)
	}
}

// readOperand assembles the little endian operand value from the given bytes.
func readOperand(data []byte) uint16 {
	var value uint16
	for i, b := range data {
		value |= uint16(b) << (8 * i)
	}
	return value
}

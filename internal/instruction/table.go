package instruction

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/retrogolib/set"
)

// ErrConfig is returned when an instruction table can not be loaded or is incomplete.
var ErrConfig = errors.New("invalid instruction table")

//go:embed instructions.json
var defaultTable []byte

var (
	// size 2 instructions that address an I/O port instead of using an immediate byte
	portInstructions = newTokenSet("in", "out")
	// size 3 instructions that load an immediate word instead of using an address
	immediateWordInstructions = newTokenSet("lxi")
)

func newTokenSet(tokens ...string) set.Set[string] {
	s := set.New[string]()
	for _, token := range tokens {
		s.Add(token)
	}
	return s
}

// Default returns the built-in Intel 8080 instruction table.
func Default() (*Table, error) {
	return Load(bytes.NewReader(defaultTable))
}

// LoadFile loads an instruction table from a JSON file.
func LoadFile(fileName string) (*Table, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file '%s': %w", ErrConfig, fileName, err)
	}
	defer func() { _ = f.Close() }()

	table, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading file '%s': %w", fileName, err)
	}
	return table, nil
}

// Load reads an instruction table in JSON format. The table is an array of
// exactly 256 entries, the array index is the opcode. Each entry is an array
// of the mnemonic and the size of the instruction in bytes:
//
//	["mvi    c,", 2]
//
// An optional third element "imm" or "addr" sets the operand kind explicitly,
// otherwise it is derived from the instruction name.
func Load(reader io.Reader) (*Table, error) {
	var raw [][]json.RawMessage
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding JSON: %w", ErrConfig, err)
	}
	if len(raw) != Count {
		return nil, fmt.Errorf("%w: expected %d entries, got %d", ErrConfig, Count, len(raw))
	}

	table := &Table{}
	for opcode, fields := range raw {
		entry, err := parseEntry(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: opcode 0x%02x: %w", ErrConfig, opcode, err)
		}
		table.entries[opcode] = entry
	}
	return table, nil
}

func parseEntry(fields []json.RawMessage) (Entry, error) {
	if len(fields) < 2 || len(fields) > 3 {
		return Entry{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(fields))
	}

	var entry Entry
	if err := json.Unmarshal(fields[0], &entry.Mnemonic); err != nil {
		return Entry{}, fmt.Errorf("decoding mnemonic: %w", err)
	}
	if err := json.Unmarshal(fields[1], &entry.Size); err != nil {
		return Entry{}, fmt.Errorf("decoding size: %w", err)
	}
	if entry.Size < 1 || entry.Size > 3 {
		return Entry{}, fmt.Errorf("invalid size %d", entry.Size)
	}

	if len(fields) == 3 {
		var kind string
		if err := json.Unmarshal(fields[2], &kind); err != nil {
			return Entry{}, fmt.Errorf("decoding operand kind: %w", err)
		}
		operand, err := parseOperandKind(kind)
		if err != nil {
			return Entry{}, err
		}
		if (operand == NoOperand) != (entry.Size == 1) {
			return Entry{}, fmt.Errorf("operand kind '%s' does not match size %d", kind, entry.Size)
		}
		entry.Operand = operand
		return entry, nil
	}

	entry.Operand = DeriveOperandKind(entry)
	return entry, nil
}

func parseOperandKind(s string) (OperandKind, error) {
	switch s {
	case "none":
		return NoOperand, nil
	case "imm":
		return Immediate, nil
	case "addr":
		return Address, nil
	default:
		return NoOperand, fmt.Errorf("unsupported operand kind '%s'", s)
	}
}

// DeriveOperandKind returns the operand kind based on the instruction name
// and size. The first token is compared as a whole, "inr" or "inx" do not
// match "in".
func DeriveOperandKind(entry Entry) OperandKind {
	token := entry.Token()

	switch entry.Size {
	case 2:
		if portInstructions.Contains(token) {
			return Address
		}
		return Immediate

	case 3:
		if immediateWordInstructions.Contains(token) {
			return Immediate
		}
		return Address

	default:
		return NoOperand
	}
}

// Dump writes a human readable representation of all table entries.
func (t *Table) Dump(writer io.Writer) {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	cfg.Fdump(writer, t.Entries())
}

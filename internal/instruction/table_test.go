package instruction

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// buildTableJSON returns a JSON table with count entries, all single byte nops
// except for the given overrides.
func buildTableJSON(count int, overrides map[int]string) string {
	var sb strings.Builder
	sb.WriteString("[\n")
	for i := range count {
		entry, ok := overrides[i]
		if !ok {
			entry = `["nop", 1]`
		}
		sb.WriteString(entry)
		if i < count-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("]")
	return sb.String()
}

func TestDefault(t *testing.T) {
	table, err := Default()
	assert.NoError(t, err)

	entries := table.Entries()
	assert.Len(t, entries, Count)
	for opcode, entry := range entries {
		assert.True(t, entry.Size >= 1 && entry.Size <= 3, fmt.Sprintf("opcode 0x%02x has size %d", opcode, entry.Size))
		assert.NotEmpty(t, entry.Mnemonic)
	}

	tests := []struct {
		opcode   byte
		mnemonic string
		size     int
		operand  OperandKind
	}{
		{0x00, "nop", 1, NoOperand},
		{0x01, "lxi    b,", 3, Immediate},
		{0x0e, "mvi    c,", 2, Immediate},
		{0x31, "lxi    sp,", 3, Immediate},
		{0x32, "sta    ", 3, Address},
		{0x76, "hlt", 1, NoOperand},
		{0x78, "mov    a,b", 1, NoOperand},
		{0xc3, "jmp    ", 3, Address},
		{0xcd, "call   ", 3, Address},
		{0xd3, "out    ", 2, Address},
		{0xdb, "in     ", 2, Address},
		{0xfe, "cpi    ", 2, Immediate},
		{0xff, "rst    7", 1, NoOperand},
	}
	for _, tt := range tests {
		t.Run(tt.mnemonic, func(t *testing.T) {
			entry := table.Entry(tt.opcode)
			assert.Equal(t, tt.mnemonic, entry.Mnemonic)
			assert.Equal(t, tt.size, entry.Size)
			assert.Equal(t, tt.operand, entry.Operand)
		})
	}
}

func TestLoad_EntryCount(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"complete table", 256, false},
		{"missing entry", 255, true},
		{"additional entry", 257, true},
		{"empty table", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(strings.NewReader(buildTableJSON(tt.count, nil)))
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrConfig))
				assert.Nil(t, table)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, table)
		})
	}
}

func TestLoad_InvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		err   string
	}{
		{"size zero", `["nop", 0]`, "invalid size 0"},
		{"size four", `["nop", 4]`, "invalid size 4"},
		{"negative size", `["nop", -1]`, "invalid size -1"},
		{"missing size", `["nop"]`, "expected 2 or 3 fields"},
		{"too many fields", `["nop", 1, "none", 1]`, "expected 2 or 3 fields"},
		{"size as string", `["nop", "1"]`, "decoding size"},
		{"mnemonic as number", `[1, 1]`, "decoding mnemonic"},
		{"unknown operand kind", `["mvi    a,", 2, "reg"]`, "unsupported operand kind"},
		{"operand kind for single byte", `["nop", 1, "imm"]`, "does not match size"},
		{"no operand kind for two bytes", `["mvi    a,", 2, "none"]`, "does not match size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildTableJSON(Count, map[int]string{0x10: tt.entry})
			_, err := Load(strings.NewReader(data))
			assert.True(t, errors.Is(err, ErrConfig))
			assert.ErrorContains(t, err, tt.err)
			assert.ErrorContains(t, err, "opcode 0x10")
		})
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"nop": 1}`))
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = Load(strings.NewReader(`[["nop", 1],`))
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestLoad_OperandKind(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  OperandKind
	}{
		{"single byte", `["mov    a,b", 1]`, NoOperand},
		{"out port", `["out    ", 2]`, Address},
		{"in port", `["in     ", 2]`, Address},
		{"immediate byte", `["mvi    a,", 2]`, Immediate},
		{"in prefix is not in", `["inx    ", 2]`, Immediate},
		{"uppercase is not matched", `["OUT    ", 2]`, Immediate},
		{"lxi word", `["lxi    h,", 3]`, Immediate},
		{"address word", `["jmp    ", 3]`, Address},
		{"explicit immediate", `["out    ", 2, "imm"]`, Immediate},
		{"explicit address", `["lxi    h,", 3, "addr"]`, Address},
		{"explicit none", `["nop", 1, "none"]`, NoOperand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildTableJSON(Count, map[int]string{0xab: tt.entry})
			table, err := Load(strings.NewReader(data))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, table.Entry(0xab).Operand)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "instructions.json")
		err := os.WriteFile(fileName, []byte(buildTableJSON(Count, nil)), 0600)
		assert.NoError(t, err)

		table, err := LoadFile(fileName)
		assert.NoError(t, err)
		assert.Equal(t, "nop", table.Entry(0xff).Mnemonic)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.True(t, errors.Is(err, ErrConfig))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("incomplete file", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "instructions.json")
		err := os.WriteFile(fileName, []byte(buildTableJSON(Count-1, nil)), 0600)
		assert.NoError(t, err)

		_, err = LoadFile(fileName)
		assert.True(t, errors.Is(err, ErrConfig))
		assert.ErrorContains(t, err, "expected 256 entries, got 255")
	})
}

func TestDeriveOperandKind(t *testing.T) {
	assert.Equal(t, NoOperand, DeriveOperandKind(Entry{Mnemonic: "nop", Size: 1}))
	assert.Equal(t, Address, DeriveOperandKind(Entry{Mnemonic: "in     ", Size: 2}))
	assert.Equal(t, Immediate, DeriveOperandKind(Entry{Mnemonic: "adi    ", Size: 2}))
	assert.Equal(t, Immediate, DeriveOperandKind(Entry{Mnemonic: "lxi    sp,", Size: 3}))
	assert.Equal(t, Address, DeriveOperandKind(Entry{Mnemonic: "shld   ", Size: 3}))
	assert.Equal(t, NoOperand, DeriveOperandKind(Entry{Mnemonic: "db     ", Size: 0}))
}

func TestEntry_Token(t *testing.T) {
	assert.Equal(t, "mvi", Entry{Mnemonic: "mvi    c,"}.Token())
	assert.Equal(t, "nop", Entry{Mnemonic: "nop"}.Token())
	assert.Equal(t, "in", Entry{Mnemonic: "  in  "}.Token())
	assert.Equal(t, "", Entry{Mnemonic: "   "}.Token())
}

func TestOperandKind_Prefix(t *testing.T) {
	assert.Equal(t, "", NoOperand.Prefix())
	assert.Equal(t, "#", Immediate.Prefix())
	assert.Equal(t, "$", Address.Prefix())
	assert.Equal(t, "OperandKind(9)", OperandKind(9).String())
}

func TestTable_Dump(t *testing.T) {
	table, err := Default()
	assert.NoError(t, err)

	var buf bytes.Buffer
	table.Dump(&buf)
	output := buf.String()
	assert.Contains(t, output, `"lxi    b,"`)
	assert.Contains(t, output, "imm")
	assert.Contains(t, output, "addr")
}

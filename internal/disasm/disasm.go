// Package disasm implements the Intel 8080 disassembler that walks a program
// image and produces one listing line per instruction.
package disasm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/retroenv/disasm8080/internal/instruction"
	"github.com/retroenv/disasm8080/internal/loader"
	"github.com/retroenv/disasm8080/internal/options"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrTruncatedInstruction is returned when the image ends before all operand bytes of an instruction.
	ErrTruncatedInstruction = errors.New("truncated instruction")
	// ErrUnknownOpcode is returned when the table has no usable entry for an opcode.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// LineWriter receives the decoded listing lines.
type LineWriter interface {
	WriteLine(line string) error
}

// Line is a decoded instruction.
type Line struct {
	Address   int
	Opcode    byte
	Entry     instruction.Entry
	Operand   uint16
	Truncated bool // operand bytes were missing and read as zero
	Text      string
}

// Disasm implements a disassembler. It decodes the image once, a new
// instance has to be created to decode the image again.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler
	table   *instruction.Table

	data   []byte
	pc     int // offset of the next instruction to decode
	digits int // address column width
	done   bool
}

// New creates a new disassembler for the given program image. The logger is
// optional, passing nil disables all logging.
func New(logger *log.Logger, table *instruction.Table, data []byte, options options.Disassembler) *Disasm {
	return &Disasm{
		logger:  logger,
		options: options,
		table:   table,
		data:    data,
		digits:  AddressDigits(len(data)),
	}
}

// Open creates a new disassembler for the program image file.
func Open(logger *log.Logger, table *instruction.Table, fileName string, options options.Disassembler) (*Disasm, error) {
	data, err := loader.New().Load(fileName)
	if err != nil {
		return nil, err
	}
	return New(logger, table, data, options), nil
}

// ProgramCounter returns the offset of the next instruction to decode.
func (dis *Disasm) ProgramCounter() int {
	return dis.pc
}

// Done returns whether the decoding has finished.
func (dis *Disasm) Done() bool {
	return dis.done
}

// Next decodes the instruction at the program counter and advances it.
// It returns io.EOF once the end of the image is reached.
func (dis *Disasm) Next() (Line, error) {
	if dis.done || dis.pc >= len(dis.data) {
		dis.done = true
		return Line{}, io.EOF
	}

	opcode := dis.data[dis.pc]
	entry := dis.table.Entry(opcode)
	if entry.Size < 1 || entry.Size > 3 {
		dis.done = true
		return Line{}, fmt.Errorf("%w: opcode 0x%02x at address %0*x has size %d",
			ErrUnknownOpcode, opcode, dis.digits, dis.pc, entry.Size)
	}

	line := Line{
		Address: dis.pc,
		Opcode:  opcode,
		Entry:   entry,
	}

	end := dis.pc + entry.Size
	if end > len(dis.data) {
		if dis.options.Truncate != options.TruncatePartial {
			dis.done = true
			return Line{}, fmt.Errorf("%w: opcode 0x%02x at address %0*x needs %d bytes, %d available",
				ErrTruncatedInstruction, opcode, dis.digits, dis.pc, entry.Size, len(dis.data)-dis.pc)
		}
		line.Truncated = true
		end = len(dis.data)
	}

	line.Operand = readOperand(dis.data[dis.pc+1 : end])
	line.Text = FormatLine(dis.pc, dis.digits, entry, line.Operand)
	dis.pc = end
	if line.Truncated {
		dis.done = true
	}
	return line, nil
}

// Lines returns an iterator over the remaining instructions of the image.
// Iteration stops after the first error.
func (dis *Disasm) Lines() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for {
			line, err := dis.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}

// Process decodes the image and writes every line to the writer.
// Cancellation is checked before each instruction is decoded, the program
// counter does not advance past the last written line.
func (dis *Disasm) Process(ctx context.Context, writer LineWriter) error {
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("decoding interrupted at address %0*x: %w", dis.digits, dis.pc, err)
		}

		line, err := dis.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := writer.WriteLine(line.Text); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		dis.logLine(line)
	}
}

func (dis *Disasm) logLine(line Line) {
	if dis.logger == nil {
		return
	}

	if line.Truncated {
		dis.logger.Warn("Instruction is truncated by the end of the image",
			log.Hex("address", line.Address),
			log.Hex("opcode", line.Opcode),
			log.Int("size", line.Entry.Size))
	}
	dis.logger.Debug(line.Text, log.Hex("address", line.Address))
}

// Package pipeline orchestrates the disassembly workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/disasm8080/internal/disasm"
	"github.com/retroenv/disasm8080/internal/instruction"
	"github.com/retroenv/disasm8080/internal/loader"
	"github.com/retroenv/disasm8080/internal/options"
	"github.com/retroenv/disasm8080/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Result contains statistics of a disassembly run.
type Result struct {
	ImageSize int // size of the program image in bytes
	Lines     int // number of listing lines written
}

// Pipeline orchestrates the complete disassembly workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new disassembly pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute runs the complete disassembly pipeline. The instruction table and
// the program image are loaded before any output is written.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler, output io.Writer) (Result, error) {
	table, data, err := p.Load(opts)
	if err != nil {
		return Result{}, err
	}

	if opts.DumpTable {
		table.Dump(output)
		return Result{}, nil
	}

	return p.ExecuteWithImage(ctx, table, data, opts, disasmOpts, output)
}

// Load loads the instruction table and the program image. The image is not
// loaded if only the table is dumped.
func (p *Pipeline) Load(opts options.Program) (*instruction.Table, []byte, error) {
	table, err := p.LoadTable(opts)
	if err != nil {
		return nil, nil, err
	}
	if opts.DumpTable {
		return table, nil, nil
	}

	data, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("loading program image: %w", err)
	}
	return table, data, nil
}

// ExecuteWithImage runs the disassembly pipeline with a pre-loaded table and image.
// This is useful for testing and programmatic usage where the image is already in memory.
func (p *Pipeline) ExecuteWithImage(ctx context.Context, table *instruction.Table, data []byte, opts options.Program,
	disasmOpts options.Disassembler, output io.Writer) (Result, error) {

	p.printInfo(opts, data)

	dis := disasm.New(p.logger, table, data, disasmOpts)
	listing := writer.New(output)

	err := dis.Process(ctx, listing)
	// lines decoded before an error are still written
	if flushErr := listing.Flush(); flushErr != nil {
		err = errors.Join(err, flushErr)
	}

	result := Result{
		ImageSize: len(data),
		Lines:     listing.Lines(),
	}
	if err != nil {
		return result, fmt.Errorf("disassembling: %w", err)
	}
	return result, nil
}

// LoadTable loads the instruction table file given in the options or the
// built-in table if no file is set.
func (p *Pipeline) LoadTable(opts options.Program) (*instruction.Table, error) {
	if opts.Instructions == "" {
		table, err := instruction.Default()
		if err != nil {
			return nil, fmt.Errorf("loading built-in instruction table: %w", err)
		}
		return table, nil
	}

	table, err := instruction.LoadFile(opts.Instructions)
	if err != nil {
		return nil, fmt.Errorf("loading instruction table: %w", err)
	}
	p.logger.Debug("Loaded instruction table", log.String("file", opts.Instructions))
	return table, nil
}

// printInfo prints information about the image being processed.
func (p *Pipeline) printInfo(opts options.Program, data []byte) {
	if len(data) > loader.MaxImageSize {
		p.logger.Warn("Program image exceeds the 8080 address space",
			log.String("file", opts.Input),
			log.Int("size", len(data)),
			log.Int("max", loader.MaxImageSize))
	}

	if opts.Quiet {
		return
	}

	p.logger.Info("Processing 8080 program image",
		log.String("file", opts.Input),
		log.Int("size", len(data)),
	)
}

// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/disasm8080/internal/options"
	"github.com/retroenv/disasm8080/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow. The output
// file is only created after the instruction table and the image are loaded.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) (err error) {
	pipe := pipeline.New(logger)
	table, data, err := pipe.Load(opts)
	if err != nil {
		return err
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closing output: %w", closeErr))
		}
	}()

	if opts.DumpTable {
		table.Dump(writer)
		return nil
	}

	result, err := pipe.ExecuteWithImage(ctx, table, data, opts, disasmOptions, writer)
	if err != nil {
		return err
	}

	logger.Debug("Disassembly finished",
		log.Int("size", result.ImageSize),
		log.Int("lines", result.Lines))
	return nil
}

func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return &nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("disasm8080 - Intel 8080 disassembler",
		log.String("version", buildinfo.Version(version, commit, date)))
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}

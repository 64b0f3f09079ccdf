// Package main implements the main entry point for an Intel 8080 disassembler
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/disasm8080/internal/cli"
	"github.com/retroenv/disasm8080/internal/config"
	"github.com/retroenv/disasm8080/internal/fileprocessor"
	"github.com/retroenv/disasm8080/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet, nil)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			if msg := usageErr.Message(); msg != "" {
				logger.Error(msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		return 1
	}

	console := config.CreateLogger(opts.Debug, opts.Quiet, nil)
	logger, closeLog := createLogger(console, opts)
	defer closeLog()

	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if err := fileprocessor.ProcessFile(ctx, logger, opts, disasmOptions); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return 0
		}
		logger.Error("Disassembling failed", log.Err(err))
		if logger != console {
			console.Error("Disassembling failed", log.Err(err))
		}
		return 1
	}
	return 0
}

// createLogger returns the logger writing to the log file if one is set.
// A log file that can not be created falls back to the console logger.
func createLogger(console *log.Logger, opts options.Program) (*log.Logger, func()) {
	if opts.LogFile == "" {
		return console, func() {}
	}

	file, err := config.OpenLogSink(opts.LogFile)
	if err != nil {
		console.Warn("Logging to console", log.Err(err))
		return console, func() {}
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet, file)
	return logger, func() { _ = file.Close() }
}

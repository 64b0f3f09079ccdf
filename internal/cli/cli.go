// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/disasm8080/internal/options"
)

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || (len(args) == 0 && !opts.DumpTable) {
		return opts, options.Disassembler{}, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, options.Disassembler{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Disassembler{}, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, options.NewDisassembler(opts.Truncate), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid usage"
	}
	return e.msg
}

// Message returns the reason of the error, it is empty if only the usage
// should be shown.
func (e *UsageError) Message() string {
	return e.msg
}

// ShowUsage prints the usage and all flags.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: disasm8080 [options] <file to disassemble>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after file to disassemble, please pass the file to disassemble as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("Only one file to disassemble is supported, got %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Truncate = strings.ToLower(opts.Truncate)

	switch opts.Truncate {
	case options.TruncateError, options.TruncatePartial:
		return nil
	default:
		return fmt.Errorf("unsupported truncate policy: %s. Valid options: %s, %s",
			opts.Truncate, options.TruncateError, options.TruncatePartial)
	}
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output listing file, printed on console if no name given")
	flags.StringVar(&opts.Instructions, "t", "", "name of the instruction table JSON file, the built-in 8080 table is used if no name given")
	flags.StringVar(&opts.LogFile, "log", options.DefaultLogFile, "name of the log file, truncated on every run, logs are printed on console if set to an empty name")
	flags.StringVar(&opts.Truncate, "truncate", options.TruncateError, "handling of a truncated instruction at the end of the file (error/partial)")
	flags.BoolVar(&opts.DumpTable, "dumptable", false, "print the loaded instruction table instead of disassembling")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

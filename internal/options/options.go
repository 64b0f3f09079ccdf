// Package options contains the program options.
package options

// Policies for an instruction at the end of the image that is missing operand bytes.
const (
	TruncateError   = "error"   // stop decoding with an error
	TruncatePartial = "partial" // output the instruction with missing bytes read as zero
)

// DefaultLogFile is the log file that is written on every run unless disabled.
const DefaultLogFile = "logs/disasm8080.log"

// Parameters contains file path options.
type Parameters struct {
	Input        string // program image to disassemble
	Output       string // listing output file, stdout if empty
	Instructions string // instruction table JSON file, built-in table if empty
	LogFile      string // log sink file, only stderr if empty
}

// Flags contains behavior options.
type Flags struct {
	Truncate  string
	DumpTable bool
	Debug     bool
	Quiet     bool
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	Truncate string // policy for a truncated trailing instruction
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler(truncate string) Disassembler {
	if truncate == "" {
		truncate = TruncateError
	}
	return Disassembler{
		Truncate: truncate,
	}
}

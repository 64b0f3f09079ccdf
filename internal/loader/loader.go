// Package loader handles program image file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxImageSize is the size of the Intel 8080 address space.
const MaxImageSize = 0x10000

// ErrIO is returned when the program image can not be read.
var ErrIO = errors.New("reading program image")

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the whole program image file into memory.
func (l *Loader) Load(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file %s: %w", ErrIO, fileName, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a program image from the given reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return data, nil
}

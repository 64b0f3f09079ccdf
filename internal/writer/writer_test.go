package writer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var errClosed = errors.New("closed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errClosed
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	assert.NoError(t, w.WriteLine("00 nop"))
	assert.NoError(t, w.WriteLine("01 out    $10"))
	assert.Equal(t, 2, w.Lines())
	assert.Equal(t, "", buf.String())

	assert.NoError(t, w.Flush())
	assert.Equal(t, "00 nop\n01 out    $10\n", buf.String())
}

func TestWriter_FlushError(t *testing.T) {
	w := New(failingWriter{})
	assert.NoError(t, w.WriteLine("00 nop"))

	err := w.Flush()
	assert.True(t, errors.Is(err, errClosed))
}

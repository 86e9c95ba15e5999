package vm

import (
	"errors"
	"io"
)

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// ReadByte reads a single byte from r. End of input reads as zero and is
// not an error.
func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}
	return buf[0], nil
}

// WriteByte writes a single byte to w and flushes w if it is buffered.
func WriteByte(w io.Writer, value byte) error {
	if _, err := w.Write([]byte{value}); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

package vm

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestReadByte(t *testing.T) {
	r := bytes.NewReader([]byte("ab"))
	b, err := ReadByte(r)
	require.NoError(t, err)
	require.Equal(t, byte('a'), b)
	b, err = ReadByte(r)
	require.NoError(t, err)
	require.Equal(t, byte('b'), b)
	b, err = ReadByte(r)
	require.NoError(t, err)
	require.Equal(t, byte(0), b)
}

func TestReadByteOneByteReader(t *testing.T) {
	b, err := ReadByte(iotest.OneByteReader(bytes.NewReader([]byte{7})))
	require.NoError(t, err)
	require.Equal(t, byte(7), b)
}

func TestReadByteError(t *testing.T) {
	cause := errors.New("boom")
	_, err := ReadByte(iotest.ErrReader(cause))
	require.ErrorIs(t, err, cause)
}

type flushRecorder struct {
	bytes.Buffer
	flushes int
}

func (f *flushRecorder) Flush() error {
	f.flushes++
	return nil
}

func TestWriteByteFlushes(t *testing.T) {
	var w flushRecorder
	require.NoError(t, WriteByte(&w, 'x'))
	require.NoError(t, WriteByte(&w, 'y'))
	require.Equal(t, "xy", w.String())
	require.Equal(t, 2, w.flushes)
}

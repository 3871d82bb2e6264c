package transport

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedPortReadsThenFails(t *testing.T) {
	p := NewScriptedPort([]byte{1, 2, 3})

	buf := make([]byte, 3)
	n, err := io.ReadFull(p, buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{1, 2, 3}, buf)

	_, err = p.Read(buf)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestScriptedPortCapturesWrites(t *testing.T) {
	p := NewScriptedPort(nil)
	_, err := p.Write([]byte{0x55, 0x01})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x55, 0x01}, p.Written())
}

func TestScriptedPortWriteError(t *testing.T) {
	p := NewScriptedPort(nil)
	p.WriteErr = io.ErrClosedPipe

	_, err := p.Write([]byte{1})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Empty(t, p.Written())
}

func TestStubOpenerFailsThenSucceeds(t *testing.T) {
	port := NewScriptedPort(nil)
	o := &StubOpener{FailFirst: 2, Ports: []io.ReadWriteCloser{port}}

	for i := 0; i < 2; i++ {
		_, err := o.Open()
		assert.ErrorIs(t, err, ErrPortNotFound)
	}

	got, err := o.Open()
	require.NoError(t, err)
	assert.Same(t, port, got.(*ScriptedPort))
	assert.Equal(t, 3, o.OpenCount())

	// exhausted port list keeps returning the last entry
	got, err = o.Open()
	require.NoError(t, err)
	assert.Same(t, port, got.(*ScriptedPort))
}

func TestStubOpenerNoPorts(t *testing.T) {
	o := &StubOpener{}
	_, err := o.Open()
	assert.ErrorIs(t, err, ErrPortNotFound)
}

func TestSynthOpenerProducesDecodableRasters(t *testing.T) {
	o := &SynthOpener{Width: 32, Height: 32}
	stream, err := o.Open()
	require.NoError(t, err)
	defer stream.Close()

	buf := make([]byte, 32*32*2)
	_, err = io.ReadFull(stream, buf)
	require.NoError(t, err)

	// samples are tenths of a degree: background ~21C up to blob ~38C
	var min, max uint16 = 65535, 0
	for i := 0; i < len(buf); i += 2 {
		v := binary.LittleEndian.Uint16(buf[i:])
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	assert.GreaterOrEqual(t, min, uint16(200))
	assert.LessOrEqual(t, max, uint16(400))
	assert.Greater(t, max, min, "the blob stands out from the background")

	// the blob drifts: the next raster differs
	buf2 := make([]byte, len(buf))
	_, err = io.ReadFull(stream, buf2)
	require.NoError(t, err)
	assert.NotEqual(t, buf, buf2)
}

func TestSynthPortCloseStopsReads(t *testing.T) {
	o := &SynthOpener{Width: 8, Height: 8}
	stream, err := o.Open()
	require.NoError(t, err)
	require.NoError(t, stream.Close())

	_, err = stream.Read(make([]byte, 16))
	assert.ErrorIs(t, err, io.EOF)
}

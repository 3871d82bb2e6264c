package transport

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"sync"
	"time"
)

// ScriptedPort implements the byte stream contract with configurable
// behaviour for testing. It provides fine-grained control over reads,
// writes, and injected errors.
type ScriptedPort struct {
	mu sync.Mutex

	// ReadBuffer holds data to be returned by Read calls.
	ReadBuffer bytes.Buffer

	// WriteBuffer captures data written to the port.
	WriteBuffer bytes.Buffer

	// ReadErr is returned by Read once the buffer is drained.
	ReadErr error

	// WriteErr is returned by every Write call if set.
	WriteErr error

	// Closed reports whether Close has been called.
	Closed bool
}

// NewScriptedPort returns a port whose reads drain the given data and then
// fail with io.ErrUnexpectedEOF, mimicking a device that went away
// mid-stream.
func NewScriptedPort(data []byte) *ScriptedPort {
	p := &ScriptedPort{ReadErr: io.ErrUnexpectedEOF}
	p.ReadBuffer.Write(data)
	return p
}

func (p *ScriptedPort) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ReadBuffer.Len() == 0 {
		return 0, p.ReadErr
	}
	return p.ReadBuffer.Read(buf)
}

func (p *ScriptedPort) Write(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.WriteErr != nil {
		return 0, p.WriteErr
	}
	return p.WriteBuffer.Write(buf)
}

func (p *ScriptedPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}

// Written returns a copy of everything written to the port so far.
func (p *ScriptedPort) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.WriteBuffer.Bytes()...)
}

// StubOpener fails a configurable number of Open calls before handing out
// streams from a factory. It records every attempt.
type StubOpener struct {
	mu sync.Mutex

	// FailFirst is the number of leading Open calls that return Err.
	FailFirst int

	// Err is returned by failing Open calls. Defaults to ErrPortNotFound.
	Err error

	// Ports are handed out in order by successful Open calls. When
	// exhausted, Open keeps returning the last entry's factory result or
	// fails if none were configured.
	Ports []io.ReadWriteCloser

	// Attempts counts every Open call.
	Attempts int
}

func (o *StubOpener) Open() (io.ReadWriteCloser, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Attempts++

	if o.Attempts <= o.FailFirst {
		if o.Err != nil {
			return nil, o.Err
		}
		return nil, ErrPortNotFound
	}

	i := o.Attempts - o.FailFirst - 1
	if i >= len(o.Ports) {
		if len(o.Ports) == 0 {
			return nil, ErrPortNotFound
		}
		i = len(o.Ports) - 1
	}
	return o.Ports[i], nil
}

// OpenCount returns the number of Open attempts so far.
func (o *StubOpener) OpenCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Attempts
}

// SynthOpener produces an endless synthetic sample stream for running the
// service without hardware (dev mode). Each raster contains a warm blob
// drifting over a cool background so filtering and palettes are visibly
// exercised.
type SynthOpener struct {
	Width  int
	Height int

	// FrameDelay paces reads to roughly one raster per interval.
	FrameDelay time.Duration
}

func (o *SynthOpener) Open() (io.ReadWriteCloser, error) {
	return &synthPort{
		width:  o.Width,
		height: o.Height,
		delay:  o.FrameDelay,
	}, nil
}

type synthPort struct {
	mu      sync.Mutex
	width   int
	height  int
	delay   time.Duration
	frame   int
	pending bytes.Buffer
	closed  bool
}

func (p *synthPort) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, io.EOF
	}

	if p.pending.Len() == 0 {
		if p.delay > 0 {
			time.Sleep(p.delay)
		}
		p.generate()
	}
	return p.pending.Read(buf)
}

// generate encodes one synthetic raster, little-endian, into the pending
// buffer. Sample units are tenths of a degree: background ~21C, blob ~38C.
func (p *synthPort) generate() {
	phase := float64(p.frame) / 25
	p.frame++

	cx := float64(p.width)/2 + float64(p.width)/4*math.Cos(phase)
	cy := float64(p.height)/2 + float64(p.height)/4*math.Sin(phase)

	var sample [2]byte
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			v := 210 + 170*math.Exp(-(dx*dx+dy*dy)/18)
			binary.LittleEndian.PutUint16(sample[:], uint16(v))
			p.pending.Write(sample[:])
		}
	}
}

func (p *synthPort) Write(buf []byte) (int, error) {
	return len(buf), nil
}

func (p *synthPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

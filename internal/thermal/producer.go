// Package thermal implements the acquisition worker for a 32x32 USB
// thermal imager: it owns the device byte stream, decodes raw rasters,
// runs the filter/colorise/flip pipeline, and exchanges messages with a
// display layer over channels.
package thermal

import (
	"context"
	"io"
	"time"

	"github.com/banshee-data/thermal.view/internal/colormap"
	"github.com/banshee-data/thermal.view/internal/convolve"
	"github.com/banshee-data/thermal.view/internal/monitoring"
	"github.com/banshee-data/thermal.view/internal/transport"
)

// ConnectionStatus reports whether the worker currently holds a live
// stream. The display layer only ever learns it through messages.
type ConnectionStatus int

const (
	Disconnected ConnectionStatus = iota
	Connected
)

func (s ConnectionStatus) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Message is one worker-to-display message: either a finished frame or a
// connection status transition.
type Message interface {
	message()
}

// FrameMessage carries a finished frame. Ownership transfers to the
// receiver.
type FrameMessage struct {
	Frame *Frame
}

// StatusMessage reports a connection status transition.
type StatusMessage struct {
	Status ConnectionStatus
}

func (FrameMessage) message()  {}
func (StatusMessage) message() {}

// openBackoff is the fixed sleep after a failed open attempt. Retries are
// unbounded; the loop tries again every cycle.
const openBackoff = time.Second

// Producer is the acquisition worker. It runs on a single goroutine and is
// the sole owner of the device stream; all cross-thread communication goes
// through the settings and message channels.
type Producer struct {
	opener transport.Opener
	stream io.ReadWriteCloser

	settings Settings
	kernel   *convolve.Kernel

	seq uint64

	messages chan Message
	updates  chan Settings

	// notify fires after each enqueued message so the display layer can
	// schedule a repaint. Optional.
	notify func()

	// sleep paces reconnect attempts; tests substitute it to observe
	// backoff without waiting.
	sleep func(time.Duration)
}

// NewProducer returns a worker that will acquire streams from the opener.
// The initial settings must already be clamped by the caller.
func NewProducer(opener transport.Opener, settings Settings) *Producer {
	return &Producer{
		opener:   opener,
		settings: settings,
		kernel:   settings.Filtering.Kernel(),
		messages: make(chan Message, 256),
		updates:  make(chan Settings, 16),
		sleep:    time.Sleep,
	}
}

// Messages returns the channel carrying frames and status transitions to
// the display layer.
func (p *Producer) Messages() <-chan Message {
	return p.messages
}

// OnPublish registers a callback fired after every enqueued message. Set it
// before calling Run.
func (p *Producer) OnPublish(fn func()) {
	p.notify = fn
}

// UpdateSettings queues a settings snapshot for the worker. It never
// blocks: when the queue is full the oldest pending snapshot is discarded,
// which is harmless because the worker coalesces to the newest anyway.
func (p *Producer) UpdateSettings(s Settings) {
	for {
		select {
		case p.updates <- s:
			return
		default:
			select {
			case <-p.updates:
			default:
			}
		}
	}
}

// Run executes the acquisition loop until the context is cancelled.
func (p *Producer) Run(ctx context.Context) {
	defer p.dropStream()

	for ctx.Err() == nil {
		p.cycle()
	}
}

// cycle performs one acquisition pass: ensure the stream is open, apply the
// newest pending settings, read one raster, process it, publish the frame.
func (p *Producer) cycle() {
	p.ensureOpen()

	if s, ok := p.drainSettings(); ok {
		p.apply(s)
	}

	if p.stream == nil {
		return
	}

	raster, err := ReadRaster(p.stream)
	if err != nil {
		monitoring.Logf("read failed, dropping connection: %v", err)
		p.dropStream()
		p.publish(StatusMessage{Status: Disconnected})
		return
	}

	p.publish(FrameMessage{Frame: p.process(raster)})
}

// ensureOpen is a no-op while a stream is held. Otherwise it makes one open
// attempt; on success it pushes the current emissivity to the device and
// announces the connection, on failure it backs off for a fixed second.
func (p *Producer) ensureOpen() {
	if p.stream != nil {
		return
	}

	stream, err := p.opener.Open()
	if err != nil {
		monitoring.Logf("failed to open port: %v; sleeping for 1s", err)
		p.sleep(openBackoff)
		return
	}

	p.stream = stream
	p.writeEmissivity()
	p.publish(StatusMessage{Status: Connected})
}

// drainSettings empties the update queue without blocking and returns only
// the newest snapshot. Intermediate updates are discarded unapplied.
func (p *Producer) drainSettings() (Settings, bool) {
	var latest Settings
	var ok bool
	for {
		select {
		case s := <-p.updates:
			latest, ok = s, true
		default:
			return latest, ok
		}
	}
}

// apply installs a settings snapshot: the kernel is rebuilt and the new
// emissivity is pushed to the device.
func (p *Producer) apply(s Settings) {
	p.settings = s
	p.kernel = s.Filtering.Kernel()
	p.writeEmissivity()
}

// process runs one raster through filter, range mapping, colorisation and
// mirroring. The raw raster is discarded afterwards.
func (p *Producer) process(raster *Raster) *Frame {
	pix := raster.Pix[:]
	if p.kernel != nil {
		pix = p.kernel.Apply(pix, Width, Height, p.settings.Edge)
	}

	min, max := sampleRange(pix)

	p.seq++
	frame := &Frame{
		Min: float64(min) / 10,
		Max: float64(max) / 10,
		Seq: p.seq,
	}
	for i, v := range pix {
		c := p.settings.Colormap.Color(colormap.ScaledValue(v, min, max, p.settings.ColorRange))
		frame.Pix[i*3+0] = c.R
		frame.Pix[i*3+1] = c.G
		frame.Pix[i*3+2] = c.B
	}

	if p.settings.FlipHorizontal {
		flipHorizontal(frame.Pix[:], Width, Height)
	}
	if p.settings.FlipVertical {
		flipVertical(frame.Pix[:], Width, Height)
	}
	return frame
}

// writeEmissivity sends the emissivity command to the device. Failures are
// logged and otherwise ignored: unlike read errors they do not drop the
// connection.
func (p *Producer) writeEmissivity() {
	if p.stream == nil {
		return
	}
	cmd := EmissivityCommand(p.settings.Emissivity)
	if _, err := p.stream.Write(cmd[:]); err != nil {
		monitoring.Logf("failed to write emissivity command: %v", err)
	}
}

// publish enqueues a message without blocking; if the display layer has
// stalled long enough to fill the channel the message is dropped.
func (p *Producer) publish(m Message) {
	select {
	case p.messages <- m:
		if p.notify != nil {
			p.notify()
		}
	default:
		monitoring.Logf("display channel full, dropping message")
	}
}

func (p *Producer) dropStream() {
	if p.stream == nil {
		return
	}
	p.stream.Close()
	p.stream = nil
}

func sampleRange(pix []uint16) (min, max uint16) {
	min, max = pix[0], pix[0]
	for _, v := range pix[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

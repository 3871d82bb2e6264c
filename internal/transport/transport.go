// Package transport produces the byte stream connecting the worker to the
// thermal imager. The worker only needs a blocking read/write stream; the
// concrete opener is selected once at startup.
package transport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// USB identifiers and line settings for the imager's built-in USB-serial
// bridge.
const (
	VendorID  = "303A"
	ProductID = "4001"
	BaudRate  = 921600
)

// ReadTimeout bounds each blocking read on the serial port. One raster
// arrives well within this at the device's native frame rate.
const ReadTimeout = time.Second

// ErrPortNotFound reports that no connected USB serial port matched the
// imager's vendor/product identifiers.
var ErrPortNotFound = fmt.Errorf("no serial port matching USB %s:%s", VendorID, ProductID)

// Opener produces a connected byte stream on demand. Open may fail; callers
// are expected to retry.
type Opener interface {
	Open() (io.ReadWriteCloser, error)
}

// SerialOpener opens the imager over a USB serial port, scanning for it by
// vendor/product ID unless an explicit device path is given.
type SerialOpener struct {
	// Path pins the opener to a specific device (e.g. /dev/ttyACM0). When
	// empty the opener scans for the imager's USB identifiers.
	Path string

	// list and open are swappable for tests.
	list func() ([]*enumerator.PortDetails, error)
	open func(name string, mode *serial.Mode) (serial.Port, error)
}

// NewSerialOpener returns an opener backed by the real serial subsystem.
func NewSerialOpener(path string) *SerialOpener {
	return &SerialOpener{
		Path: path,
		list: enumerator.GetDetailedPortsList,
		open: serial.Open,
	}
}

func (o *SerialOpener) findPort() (string, error) {
	if o.Path != "" {
		return o.Path, nil
	}

	ports, err := o.list()
	if err != nil {
		return "", fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		if strings.EqualFold(port.VID, VendorID) && strings.EqualFold(port.PID, ProductID) {
			return port.Name, nil
		}
	}
	return "", ErrPortNotFound
}

// Open locates the imager and opens it at the device's fixed line settings
// with a one second read timeout.
func (o *SerialOpener) Open() (io.ReadWriteCloser, error) {
	name, err := o.findPort()
	if err != nil {
		return nil, err
	}

	port, err := o.open(name, &serial.Mode{BaudRate: BaudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to open port %s: %w", name, err)
	}

	if err := port.SetReadTimeout(ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", name, err)
	}

	return port, nil
}

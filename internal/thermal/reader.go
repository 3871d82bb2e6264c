package thermal

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadRaster reads exactly one full raster of little-endian 16-bit samples
// from the stream into a fresh Raster. The stream carries no framing; byte
// alignment is trusted from stream start.
//
// A short read or I/O error returns an error and no raster; partial data is
// never surfaced.
func ReadRaster(r io.Reader) (*Raster, error) {
	var buf [RasterBytes]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("failed to read raster: %w", err)
	}

	raster := &Raster{}
	for i := range raster.Pix {
		raster.Pix[i] = binary.LittleEndian.Uint16(buf[i*2 : i*2+2])
	}
	return raster, nil
}

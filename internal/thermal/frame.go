package thermal

import "image"

// The imager always produces 32x32 rasters; the dimensions are a property
// of the device, never derived from input.
const (
	Width  = 32
	Height = 32

	// RasterBytes is the wire size of one full raster of little-endian
	// 16-bit samples.
	RasterBytes = Width * Height * 2
)

// Raster is one full grid of raw sensor samples, row-major, in device
// units (tenths of a degree).
type Raster struct {
	Pix [Width * Height]uint16
}

// At returns the sample at (x, y).
func (r *Raster) At(x, y int) uint16 {
	return r.Pix[y*Width+x]
}

// Frame is one colorised raster ready for display. Min and Max are the
// frame's dynamic range in degrees.
type Frame struct {
	// Pix holds RGB triples, row-major, Width x Height.
	Pix [Width * Height * 3]uint8

	Min float64
	Max float64

	// Seq increments once per published frame.
	Seq uint64
}

// RGBA converts the frame to a standard image for encoding. scale is a
// nearest-neighbour upscaling factor; values below 1 are treated as 1.
func (f *Frame) RGBA(scale int) *image.NRGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, Width*scale, Height*scale))
	for y := 0; y < Height*scale; y++ {
		for x := 0; x < Width*scale; x++ {
			src := ((y/scale)*Width + x/scale) * 3
			dst := img.PixOffset(x, y)
			img.Pix[dst+0] = f.Pix[src+0]
			img.Pix[dst+1] = f.Pix[src+1]
			img.Pix[dst+2] = f.Pix[src+2]
			img.Pix[dst+3] = 0xFF
		}
	}
	return img
}

// flipHorizontal mirrors an RGB pixel buffer across the vertical centre
// line, in place. Indexing runs along the axis being reflected (the row),
// so the operation is correct for any width/height, square or not.
func flipHorizontal(pix []uint8, width, height int) {
	for y := 0; y < height; y++ {
		row := pix[y*width*3 : (y+1)*width*3]
		for x := 0; x < width/2; x++ {
			a := x * 3
			b := (width - 1 - x) * 3
			row[a], row[b] = row[b], row[a]
			row[a+1], row[b+1] = row[b+1], row[a+1]
			row[a+2], row[b+2] = row[b+2], row[a+2]
		}
	}
}

// flipVertical mirrors an RGB pixel buffer across the horizontal centre
// line, in place.
func flipVertical(pix []uint8, width, height int) {
	rowBytes := width * 3
	tmp := make([]uint8, rowBytes)
	for y := 0; y < height/2; y++ {
		top := pix[y*rowBytes : (y+1)*rowBytes]
		bottom := pix[(height-1-y)*rowBytes : (height-y)*rowBytes]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

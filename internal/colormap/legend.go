package colormap

import "image"

// Legend renders a horizontal palette strip of the given dimensions, low
// values on the left. The display layer uses it as a scale reference next
// to the live image.
func Legend(m Map, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		c := m.Color(float64(x) / float64(width))
		for y := 0; y < height; y++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}

// Black returns an all-black opaque image, the placeholder shown before the
// first frame arrives.
func Black(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 0xFF
	}
	return img
}

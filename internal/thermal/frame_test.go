package thermal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePix(width, height int) []uint8 {
	pix := make([]uint8, width*height*3)
	for i := range pix {
		pix[i] = uint8(i % 251)
	}
	return pix
}

func TestFlipHorizontalInvolution(t *testing.T) {
	pix := makePix(Width, Height)
	orig := append([]uint8(nil), pix...)

	flipHorizontal(pix, Width, Height)
	assert.NotEqual(t, orig, pix, "flip should move pixels")

	flipHorizontal(pix, Width, Height)
	if diff := cmp.Diff(orig, pix); diff != "" {
		t.Errorf("double horizontal flip is not identity (-want +got):\n%s", diff)
	}
}

func TestFlipVerticalInvolution(t *testing.T) {
	pix := makePix(Width, Height)
	orig := append([]uint8(nil), pix...)

	flipVertical(pix, Width, Height)
	assert.NotEqual(t, orig, pix)

	flipVertical(pix, Width, Height)
	if diff := cmp.Diff(orig, pix); diff != "" {
		t.Errorf("double vertical flip is not identity (-want +got):\n%s", diff)
	}
}

// The flips index along the axis being reflected, so they stay correct on
// non-square buffers too.
func TestFlipNonSquare(t *testing.T) {
	const w, h = 4, 2
	// two rows: values 0..3 and 10..13 in the red channel
	pix := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[(y*w+x)*3] = uint8(y*10 + x)
		}
	}

	hp := append([]uint8(nil), pix...)
	flipHorizontal(hp, w, h)
	assert.Equal(t, uint8(3), hp[0*3], "row 0 reversed")
	assert.Equal(t, uint8(0), hp[3*3])
	assert.Equal(t, uint8(13), hp[(w+0)*3], "row 1 reversed")

	vp := append([]uint8(nil), pix...)
	flipVertical(vp, w, h)
	assert.Equal(t, uint8(10), vp[0*3], "rows swapped")
	assert.Equal(t, uint8(0), vp[(w+0)*3])
}

func TestFrameRGBA(t *testing.T) {
	frame := &Frame{}
	frame.Pix[0] = 200 // red channel of (0,0)

	img := frame.RGBA(2)
	require.Equal(t, Width*2, img.Bounds().Dx())
	require.Equal(t, Height*2, img.Bounds().Dy())

	// nearest-neighbour: the 2x2 block at the origin shares the source pixel
	for _, pt := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		c := img.NRGBAAt(pt[0], pt[1])
		assert.Equal(t, uint8(200), c.R)
		assert.Equal(t, uint8(0xFF), c.A)
	}

	c := img.NRGBAAt(2, 0)
	assert.Equal(t, uint8(0), c.R, "next block comes from next source pixel")
}

func TestFrameRGBAScaleFloor(t *testing.T) {
	img := (&Frame{}).RGBA(0)
	assert.Equal(t, Width, img.Bounds().Dx())
}

func TestRasterAt(t *testing.T) {
	r := &Raster{}
	r.Pix[5*Width+3] = 1234
	assert.Equal(t, uint16(1234), r.At(3, 5))
}

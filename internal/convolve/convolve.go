// Package convolve applies small convolution kernels to row-major grids of
// 16-bit sensor samples. Kernels carry float64 weights; results are rounded
// and clamped back into the uint16 range so a filtered grid can flow through
// the same pipeline as a raw one.
package convolve

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Edge selects how out-of-bounds neighbours are synthesised during
// convolution.
type Edge int

const (
	// Constant pads with zero outside the grid.
	Constant Edge = iota
	// Extend clamps to the nearest border sample.
	Extend
	// Wrap treats the grid as a torus.
	Wrap
	// Mirror reflects indices across the border.
	Mirror
)

// Edges lists every edge strategy paired with its display name, in picker
// order.
var Edges = []struct {
	Edge Edge
	Name string
}{
	{Constant, "Constant"},
	{Extend, "Extend"},
	{Wrap, "Wrap"},
	{Mirror, "Mirror"},
}

func (e Edge) String() string {
	for _, entry := range Edges {
		if entry.Edge == e {
			return entry.Name
		}
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// ParseEdge maps a display name back to its edge strategy.
func ParseEdge(name string) (Edge, error) {
	for _, entry := range Edges {
		if entry.Name == name {
			return entry.Edge, nil
		}
	}
	return Constant, fmt.Errorf("unknown edge strategy %q", name)
}

// Kernel is a convolution kernel with odd dimensions.
type Kernel struct {
	width   int
	height  int
	weights []float64
}

// New builds a kernel of the given dimensions by evaluating f at each
// position. Dimensions must be odd so the kernel has a centre sample.
func New(width, height int, f func(x, y int) float64) *Kernel {
	if width%2 == 0 || height%2 == 0 {
		panic(fmt.Sprintf("convolve: kernel dimensions must be odd, got %dx%d", width, height))
	}
	k := &Kernel{
		width:   width,
		height:  height,
		weights: make([]float64, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			k.weights[y*width+x] = f(x, y)
		}
	}
	return k
}

// Normalize scales the weights so they sum to one. A zero-sum kernel is left
// unchanged.
func (k *Kernel) Normalize() {
	sum := floats.Sum(k.weights)
	if sum == 0 {
		return
	}
	floats.Scale(1/sum, k.weights)
}

// Box3x3 returns the 3x3 arithmetic-mean kernel.
func Box3x3() *Kernel {
	k := New(3, 3, func(_, _ int) float64 { return 1 })
	k.Normalize()
	return k
}

// Gaussian3x3 returns the conventional 3x3 Gaussian low-pass kernel
// [1 2 1; 2 4 2; 1 2 1] / 16.
func Gaussian3x3() *Kernel {
	weights := [3][3]float64{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}
	k := New(3, 3, func(x, y int) float64 { return weights[y][x] })
	k.Normalize()
	return k
}

// resolve maps a possibly out-of-bounds index onto [0, n) according to the
// edge strategy. The boolean is false only for Constant, where the caller
// substitutes the pad value.
func resolve(i, n int, edge Edge) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch edge {
	case Extend:
		if i < 0 {
			return 0, true
		}
		return n - 1, true
	case Wrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	case Mirror:
		// Reflect across the border: -1 -> 0, -2 -> 1, n -> n-1.
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			} else {
				i = 2*n - 1 - i
			}
		}
		return i, true
	default:
		return 0, false
	}
}

// Apply convolves src, a row-major width x height grid, with the kernel and
// returns a freshly allocated grid of identical dimensions. Out-of-bounds
// neighbours follow the edge strategy; Constant pads with zero.
func (k *Kernel) Apply(src []uint16, width, height int, edge Edge) []uint16 {
	if len(src) != width*height {
		panic(fmt.Sprintf("convolve: grid length %d does not match %dx%d", len(src), width, height))
	}

	dst := make([]uint16, len(src))
	rx := k.width / 2
	ry := k.height / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var acc float64
			for ky := 0; ky < k.height; ky++ {
				for kx := 0; kx < k.width; kx++ {
					w := k.weights[ky*k.width+kx]
					sx, okx := resolve(x+kx-rx, width, edge)
					sy, oky := resolve(y+ky-ry, height, edge)
					if !okx || !oky {
						continue // constant zero pad
					}
					acc += w * float64(src[sy*width+sx])
				}
			}
			switch {
			case acc < 0:
				dst[y*width+x] = 0
			case acc > 65535:
				dst[y*width+x] = 65535
			default:
				dst[y*width+x] = uint16(acc + 0.5)
			}
		}
	}
	return dst
}

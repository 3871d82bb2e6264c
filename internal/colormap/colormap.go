// Package colormap turns normalised sample values into false-colour pixels.
//
// Every palette is a deterministic function from [0,1] to an RGB triple.
// Turbo and Magma use published polynomial fits of the reference tables;
// the remaining perceptual palettes interpolate fixed control-point tables.
package colormap

import "fmt"

// RGB is one 8-bit colour triple.
type RGB struct {
	R, G, B uint8
}

// Map selects one of the available palettes.
type Map int

const (
	Turbo Map = iota
	Magma
	Bluered
	Breeze
	Mist
	LinearBlueRed
	LinearBlackWhite
)

// Maps lists every palette paired with its display name, in picker order.
var Maps = []struct {
	Map  Map
	Name string
}{
	{Turbo, "Turbo"},
	{Magma, "Magma"},
	{Bluered, "Blue Red"},
	{Breeze, "Breeze"},
	{Mist, "Mist"},
	{LinearBlueRed, "Blue Red (linear)"},
	{LinearBlackWhite, "Black White (linear)"},
}

func (m Map) String() string {
	for _, entry := range Maps {
		if entry.Map == m {
			return entry.Name
		}
	}
	return fmt.Sprintf("Map(%d)", int(m))
}

// Parse maps a display name back to its palette.
func Parse(name string) (Map, error) {
	for _, entry := range Maps {
		if entry.Name == name {
			return entry.Map, nil
		}
	}
	return Turbo, fmt.Errorf("unknown colormap %q", name)
}

// ScaledValue normalises a raw sample against the frame's dynamic range and
// applies contrast compression. colorRange is a percentage: 100 uses the
// full palette, smaller values squeeze the frame into a centred sub-range.
//
// A flat frame (min == max) would divide by zero; it maps to mid-scale 0.5
// so the output stays finite.
func ScaledValue(v, min, max uint16, colorRange int) float64 {
	var t float64
	if max == min {
		t = 0.5
	} else {
		t = float64(v-min) / float64(max-min)
	}

	cr := float64(colorRange) / 100
	scaled := (1-cr)/2 + t*cr

	return clamp01(scaled)
}

// Color evaluates the palette at t. Inputs outside [0,1] are clamped.
func (m Map) Color(t float64) RGB {
	t = clamp01(t)
	switch m {
	case Turbo:
		return turbo(t)
	case Magma:
		return magma(t)
	case Bluered:
		return blueredTable.at(t)
	case Breeze:
		return breezeTable.at(t)
	case Mist:
		return mistTable.at(t)
	case LinearBlueRed:
		return lerpRGB(RGB{0, 0, 255}, RGB{255, 0, 0}, t)
	case LinearBlackWhite:
		return lerpRGB(RGB{0, 0, 0}, RGB{255, 255, 255}, t)
	default:
		return RGB{}
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func toByte(v float64) uint8 {
	v = clamp01(v)
	return uint8(v*255 + 0.5)
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t + 0.5),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t + 0.5),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t + 0.5),
	}
}

// turbo evaluates the fifth-order polynomial fit of Google's Turbo
// colormap.
func turbo(t float64) RGB {
	r := 0.13572138 + t*(4.61539260+t*(-42.66032258+t*(132.13108234+t*(-152.94239396+t*59.28637943))))
	g := 0.09140261 + t*(2.19418839+t*(4.84296658+t*(-14.18503333+t*(4.27729857+t*2.82956604))))
	b := 0.10667330 + t*(12.64194608+t*(-60.58204836+t*(110.36276771+t*(-89.90310912+t*27.34824973))))
	return RGB{toByte(r), toByte(g), toByte(b)}
}

// magma evaluates the sixth-order polynomial fit of the matplotlib Magma
// colormap.
func magma(t float64) RGB {
	r := -0.002136485053939582 + t*(0.2516605407371642+t*(8.353717279216625+t*(-27.66873308595866+t*(52.17613981234068+t*(-50.76852536473588+t*18.65570506591883)))))
	g := -0.000749655052795221 + t*(0.6775232436837668+t*(-3.577719514958484+t*(14.26473078096533+t*(-27.94360607168351+t*(29.04658282127291+t*-11.48977351997711)))))
	b := -0.005386127855323933 + t*(2.494026599312351+t*(0.3144679030132573+t*(-13.64921318813922+t*(12.94416944238394+t*(4.23415299384598+t*-5.601961508734096)))))
	return RGB{toByte(r), toByte(g), toByte(b)}
}

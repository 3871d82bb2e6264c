package thermal

import (
	"fmt"

	"github.com/banshee-data/thermal.view/internal/colormap"
	"github.com/banshee-data/thermal.view/internal/convolve"
)

// FilteringMethod selects the smoothing kernel applied to raw rasters
// before colorisation.
type FilteringMethod int

const (
	FilterNone FilteringMethod = iota
	FilterBox3x3
	FilterGaussian3x3
)

// FilteringMethods lists every method paired with its display name, in
// picker order.
var FilteringMethods = []struct {
	Method FilteringMethod
	Name   string
}{
	{FilterNone, "None"},
	{FilterBox3x3, "Box 3x3"},
	{FilterGaussian3x3, "Gaussian 3x3"},
}

func (m FilteringMethod) String() string {
	for _, entry := range FilteringMethods {
		if entry.Method == m {
			return entry.Name
		}
	}
	return fmt.Sprintf("FilteringMethod(%d)", int(m))
}

// ParseFilteringMethod maps a display name back to its method.
func ParseFilteringMethod(name string) (FilteringMethod, error) {
	for _, entry := range FilteringMethods {
		if entry.Name == name {
			return entry.Method, nil
		}
	}
	return FilterNone, fmt.Errorf("unknown filtering method %q", name)
}

// Kernel returns the convolution kernel for the method, or nil for
// FilterNone.
func (m FilteringMethod) Kernel() *convolve.Kernel {
	switch m {
	case FilterBox3x3:
		return convolve.Box3x3()
	case FilterGaussian3x3:
		return convolve.Gaussian3x3()
	default:
		return nil
	}
}

// Settings is the complete processing configuration. It is a value type:
// updates replace the whole struct and equality is plain ==.
//
// Emissivity and ColorRange are percentages. The settings producer clamps
// them to 0..100 before they reach the worker; the worker trusts that.
type Settings struct {
	FlipHorizontal bool
	FlipVertical   bool
	Filtering      FilteringMethod
	Edge           convolve.Edge
	Colormap       colormap.Map
	Emissivity     int
	ColorRange     int
}

// DefaultSettings returns the configuration used before any update arrives.
func DefaultSettings() Settings {
	return Settings{
		Filtering:  FilterBox3x3,
		Edge:       convolve.Extend,
		Colormap:   colormap.Turbo,
		Emissivity: 95,
		ColorRange: 100,
	}
}

// Clamp returns a copy with the percentage fields forced into 0..100.
// Settings producers call this before handing a value to the worker.
func (s Settings) Clamp() Settings {
	s.Emissivity = clampPercent(s.Emissivity)
	s.ColorRange = clampPercent(s.ColorRange)
	return s
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/thermal.view/internal/colormap"
	"github.com/banshee-data/thermal.view/internal/convolve"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.False(t, s.FlipHorizontal)
	assert.False(t, s.FlipVertical)
	assert.Equal(t, FilterBox3x3, s.Filtering)
	assert.Equal(t, convolve.Extend, s.Edge)
	assert.Equal(t, colormap.Turbo, s.Colormap)
	assert.Equal(t, 95, s.Emissivity)
	assert.Equal(t, 100, s.ColorRange)
}

func TestSettingsEquality(t *testing.T) {
	// Settings is a value type compared with plain ==.
	a := DefaultSettings()
	b := DefaultSettings()
	assert.True(t, a == b)

	b.ColorRange = 50
	assert.False(t, a == b)
}

func TestSettingsClamp(t *testing.T) {
	s := DefaultSettings()
	s.Emissivity = 150
	s.ColorRange = -20
	s = s.Clamp()
	assert.Equal(t, 100, s.Emissivity)
	assert.Equal(t, 0, s.ColorRange)

	// in-range values pass through
	s.Emissivity = 42
	s.ColorRange = 77
	s = s.Clamp()
	assert.Equal(t, 42, s.Emissivity)
	assert.Equal(t, 77, s.ColorRange)
}

func TestFilteringMethodKernel(t *testing.T) {
	assert.Nil(t, FilterNone.Kernel())
	assert.NotNil(t, FilterBox3x3.Kernel())
	assert.NotNil(t, FilterGaussian3x3.Kernel())
}

func TestParseFilteringMethodRoundTrip(t *testing.T) {
	for _, entry := range FilteringMethods {
		got, err := ParseFilteringMethod(entry.Name)
		require.NoError(t, err)
		assert.Equal(t, entry.Method, got)
		assert.Equal(t, entry.Name, got.String())
	}

	_, err := ParseFilteringMethod("Median 5x5")
	assert.Error(t, err)
}

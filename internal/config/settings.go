// Package config loads the startup processing settings from a JSON file.
// Fields omitted from the file retain their defaults, so partial configs
// are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/thermal.view/internal/colormap"
	"github.com/banshee-data/thermal.view/internal/convolve"
	"github.com/banshee-data/thermal.view/internal/thermal"
)

// FileSettings mirrors thermal.Settings with optional fields. Enum fields
// use the same display names shown in pickers ("Box 3x3", "Turbo", ...).
type FileSettings struct {
	FlipHorizontal  *bool   `json:"flip_horizontal,omitempty"`
	FlipVertical    *bool   `json:"flip_vertical,omitempty"`
	FilteringMethod *string `json:"filtering_method,omitempty"`
	EdgeStrategy    *string `json:"edge_strategy,omitempty"`
	Colormap        *string `json:"colormap,omitempty"`
	Emissivity      *int    `json:"emissivity,omitempty"`
	ColorRange      *int    `json:"color_range,omitempty"`
}

// Load reads a FileSettings from a JSON file. The file must have a .json
// extension and stay under the max file size.
func Load(path string) (*FileSettings, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("settings file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat settings file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("settings file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	cfg := &FileSettings{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings JSON: %w", err)
	}
	return cfg, nil
}

// Apply overlays the file's values onto base, parses the enum names, and
// clamps the percentage fields. The result is safe to hand to the worker.
func (f *FileSettings) Apply(base thermal.Settings) (thermal.Settings, error) {
	s := base

	if f.FlipHorizontal != nil {
		s.FlipHorizontal = *f.FlipHorizontal
	}
	if f.FlipVertical != nil {
		s.FlipVertical = *f.FlipVertical
	}
	if f.FilteringMethod != nil {
		m, err := thermal.ParseFilteringMethod(*f.FilteringMethod)
		if err != nil {
			return base, err
		}
		s.Filtering = m
	}
	if f.EdgeStrategy != nil {
		e, err := convolve.ParseEdge(*f.EdgeStrategy)
		if err != nil {
			return base, err
		}
		s.Edge = e
	}
	if f.Colormap != nil {
		m, err := colormap.Parse(*f.Colormap)
		if err != nil {
			return base, err
		}
		s.Colormap = m
	}
	if f.Emissivity != nil {
		s.Emissivity = *f.Emissivity
	}
	if f.ColorRange != nil {
		s.ColorRange = *f.ColorRange
	}

	return s.Clamp(), nil
}

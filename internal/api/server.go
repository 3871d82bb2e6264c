// Package api exposes the display-facing HTTP surface: the latest frame
// and palette legend as PNGs, a JSON status view, and live settings
// updates. It stands in for an on-screen UI; the worker itself knows
// nothing about HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"tailscale.com/tsweb"

	"github.com/banshee-data/thermal.view/internal/colormap"
	"github.com/banshee-data/thermal.view/internal/config"
	"github.com/banshee-data/thermal.view/internal/thermal"
	"github.com/banshee-data/thermal.view/internal/version"
)

// defaultScale is the nearest-neighbour upscaling factor applied to the
// 32x32 frame when serving PNGs.
const defaultScale = 8

// SettingsSink receives clamped settings snapshots destined for the
// worker.
type SettingsSink interface {
	UpdateSettings(thermal.Settings)
}

type Server struct {
	store *FrameStore
	sink  SettingsSink
}

func NewServer(store *FrameStore, sink SettingsSink) *Server {
	return &Server{store: store, sink: sink}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.statusHandler)
	mux.HandleFunc("/frame.png", s.frameHandler)
	mux.HandleFunc("/palette.png", s.paletteHandler)
	mux.HandleFunc("/settings", s.settingsHandler)
	return mux
}

// statusJSON is the wire shape of GET /status.
type statusJSON struct {
	Version        string  `json:"version"`
	Connection     string  `json:"connection"`
	FramesReceived uint64  `json:"frames_received"`
	LastFrameTime  string  `json:"last_frame_time,omitempty"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`

	Settings settingsJSON `json:"settings"`
}

type settingsJSON struct {
	FlipHorizontal  bool   `json:"flip_horizontal"`
	FlipVertical    bool   `json:"flip_vertical"`
	FilteringMethod string `json:"filtering_method"`
	EdgeStrategy    string `json:"edge_strategy"`
	Colormap        string `json:"colormap"`
	Emissivity      int    `json:"emissivity"`
	ColorRange      int    `json:"color_range"`
}

func marshalSettings(s thermal.Settings) settingsJSON {
	return settingsJSON{
		FlipHorizontal:  s.FlipHorizontal,
		FlipVertical:    s.FlipVertical,
		FilteringMethod: s.Filtering.String(),
		EdgeStrategy:    s.Edge.String(),
		Colormap:        s.Colormap.String(),
		Emissivity:      s.Emissivity,
		ColorRange:      s.ColorRange,
	}
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	frame, status, frames, lastFrame, settings := s.store.Snapshot()
	body := statusJSON{
		Version:        version.Version,
		Connection:     status.String(),
		FramesReceived: frames,
		Settings:       marshalSettings(settings),
	}
	if frame != nil {
		body.Min = frame.Min
		body.Max = frame.Max
		body.LastFrameTime = lastFrame.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode status", http.StatusInternalServerError)
	}
}

func scaleParam(r *http.Request) int {
	scale := defaultScale
	if v := r.URL.Query().Get("scale"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 64 {
			scale = n
		}
	}
	return scale
}

func (s *Server) frameHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scale := scaleParam(r)
	var img *image.NRGBA
	if frame := s.store.Frame(); frame != nil {
		img = frame.RGBA(scale)
	} else {
		// placeholder until the first frame arrives
		img = colormap.Black(thermal.Width*scale, thermal.Height*scale)
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		http.Error(w, "Failed to encode frame", http.StatusInternalServerError)
	}
}

func (s *Server) paletteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	m := s.store.Settings().Colormap
	if name := r.URL.Query().Get("map"); name != "" {
		parsed, err := colormap.Parse(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m = parsed
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, colormap.Legend(m, 256, 24)); err != nil {
		http.Error(w, "Failed to encode palette", http.StatusInternalServerError)
	}
}

// settingsHandler accepts a partial settings document, overlays it on the
// current settings, and forwards the clamped result to the worker. This is
// the settings producer: values reaching the worker are always in range.
func (s *Server) settingsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(marshalSettings(s.store.Settings())); err != nil {
			http.Error(w, "Failed to encode settings", http.StatusInternalServerError)
		}
	case http.MethodPost:
		var patch config.FileSettings
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, fmt.Sprintf("invalid settings document: %v", err), http.StatusBadRequest)
			return
		}

		settings, err := patch.Apply(s.store.Settings())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.store.SetSettings(settings)
		s.sink.UpdateSettings(settings)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(marshalSettings(settings)); err != nil {
			http.Error(w, "Failed to encode settings", http.StatusInternalServerError)
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// AttachAdminRoutes attaches debugging endpoints to the given HTTP mux
// served at /debug/. These routes are accessible only over localhost/via
// Tailscale and are not publicly accessible.
func (s *Server) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.HandleFunc("frame", "latest thermal frame as PNG", s.frameHandler)
	debug.HandleFunc("palette", "current palette legend as PNG", s.paletteHandler)
	debug.HandleSilentFunc("status", s.statusHandler)
}

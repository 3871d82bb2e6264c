package api

import (
	"sync"
	"time"

	"github.com/banshee-data/thermal.view/internal/thermal"
)

// FrameStore holds the display layer's view of the worker: the latest
// frame, the connection status, and the settings last applied. The consumer
// goroutine writes it; HTTP handlers read it.
type FrameStore struct {
	mu        sync.Mutex
	frame     *thermal.Frame
	status    thermal.ConnectionStatus
	frames    uint64
	lastFrame time.Time
	settings  thermal.Settings
}

// NewFrameStore returns a store reporting Disconnected with no frame.
func NewFrameStore(settings thermal.Settings) *FrameStore {
	return &FrameStore{settings: settings}
}

// SetFrame records a newly received frame.
func (s *FrameStore) SetFrame(f *thermal.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = f
	s.frames++
	s.lastFrame = time.Now()
}

// SetStatus records a connection status transition.
func (s *FrameStore) SetStatus(status thermal.ConnectionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// SetSettings records the settings snapshot last sent to the worker.
func (s *FrameStore) SetSettings(settings thermal.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Frame returns the latest frame, or nil before the first one arrives.
func (s *FrameStore) Frame() *thermal.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Settings returns the settings snapshot last sent to the worker.
func (s *FrameStore) Settings() thermal.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Snapshot returns a consistent view of all store fields.
func (s *FrameStore) Snapshot() (frame *thermal.Frame, status thermal.ConnectionStatus, frames uint64, lastFrame time.Time, settings thermal.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, s.status, s.frames, s.lastFrame, s.settings
}

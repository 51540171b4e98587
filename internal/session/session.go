// Package session owns the per-camera-session trackers. Each active
// camera stream gets its own tracker instance; frames for a session are
// processed at most one at a time, and an overlapping frame is dropped
// rather than queued.
package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/delta-vision/frametrack/track"
)

// ErrUnknownSession is returned for operations on a closed or never
// opened session.
var ErrUnknownSession = errors.New("unknown session")

type session struct {
	id uuid.UUID
	// mu serializes frame processing for this session. Process uses
	// TryLock so a frame arriving while another is in flight is skipped.
	mu      sync.Mutex
	tracker *track.Tracker
}

// Manager hands out per-session trackers and enforces the one-frame-in-
// flight rule.
type Manager struct {
	mu       sync.Mutex
	logger   *slog.Logger
	cfg      track.Config
	sessions map[uuid.UUID]*session
}

// NewManager creates a session manager; every session it opens uses cfg.
func NewManager(logger *slog.Logger, cfg track.Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tracker config")
	}
	return &Manager{
		logger:   logger,
		cfg:      cfg,
		sessions: make(map[uuid.UUID]*session),
	}, nil
}

// Open starts a new detection session and returns its identifier.
func (m *Manager) Open() (uuid.UUID, error) {
	tracker, err := track.New(m.cfg)
	if err != nil {
		return uuid.Nil, err
	}

	s := &session{
		id:      uuid.New(),
		tracker: tracker,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info("session opened", "session_id", s.id)
	return s.id, nil
}

// Close ends a session and discards its tracker.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrUnknownSession
	}
	delete(m.sessions, id)
	m.logger.Info("session closed", "session_id", id)
	return nil
}

// Reset clears a session's tracker state for a fresh capture run while
// keeping the session open.
func (m *Manager) Reset(id uuid.UUID) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset()
	m.logger.Info("session reset", "session_id", id)
	return nil
}

// Process runs one frame of detections through the session's tracker
// using its internal frame clock. When a previous frame is still in
// flight the new frame is dropped and skipped is true; the tracker is
// left untouched.
func (m *Manager) Process(id uuid.UUID, dets []track.Detection) (results []track.TrackedDetection, skipped bool, err error) {
	s, err := m.get(id)
	if err != nil {
		return nil, false, err
	}
	if !s.mu.TryLock() {
		m.logger.Warn("frame dropped, previous frame still in flight", "session_id", id)
		return nil, true, nil
	}
	defer s.mu.Unlock()
	return s.tracker.Update(dets), false, nil
}

// Snapshot returns the session tracker's live tracks for diagnostics.
func (m *Manager) Snapshot(id uuid.UUID) ([]track.Track, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Snapshot(), nil
}

func (m *Manager) get(id uuid.UUID) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}

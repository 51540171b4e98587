package track

import "github.com/pkg/errors"

// Config holds the tracker thresholds. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// IoUThreshold is the minimum overlap (exclusive) for a detection to
	// claim an existing track.
	IoUThreshold float64
	// MaxAge is the staleness horizon in frame units: a track whose last
	// match is more than MaxAge behind the current frame is evicted.
	MaxAge float64
	// MaxHistory bounds the per-track position history.
	MaxHistory int
	// MotionWindow is the number of recent samples considered by the
	// moving/still classifier.
	MotionWindow int
	// MotionThreshold is the mean per-step displacement (pixels per frame
	// unit) above which a track counts as moving.
	MotionThreshold float64
	// MotionMinSamples is the minimum stored samples before a track can
	// be classified as moving.
	MotionMinSamples int
}

// DefaultConfig returns the thresholds the alert layer is tuned to:
// IoU 0.3, staleness 3 frames, history 10, motion window 5 with a mean
// displacement threshold of 5 px/frame over at least 3 samples.
func DefaultConfig() Config {
	return Config{
		IoUThreshold:     0.3,
		MaxAge:           3,
		MaxHistory:       10,
		MotionWindow:     5,
		MotionThreshold:  5.0,
		MotionMinSamples: 3,
	}
}

// Validate checks the config for usable threshold values.
func (c Config) Validate() error {
	if c.IoUThreshold < 0 || c.IoUThreshold >= 1 {
		return errors.Errorf("iou threshold must be in [0, 1), got %f", c.IoUThreshold)
	}
	if c.MaxAge <= 0 {
		return errors.Errorf("max age must be positive, got %f", c.MaxAge)
	}
	if c.MaxHistory < 2 {
		return errors.Errorf("max history must be at least 2, got %d", c.MaxHistory)
	}
	if c.MotionWindow < 2 {
		return errors.Errorf("motion window must be at least 2, got %d", c.MotionWindow)
	}
	if c.MotionThreshold < 0 {
		return errors.Errorf("motion threshold must be non-negative, got %f", c.MotionThreshold)
	}
	if c.MotionMinSamples < 2 {
		return errors.Errorf("motion min samples must be at least 2, got %d", c.MotionMinSamples)
	}
	return nil
}

// Tracker reconstructs persistent object identities, velocities and a
// moving/still classification from identity-free per-frame detections.
// One instance serves one camera session and owns its track table
// exclusively. Calls are expected to be serialized by the caller with
// monotonically non-decreasing timestamps; the tracker does no internal
// locking or queuing.
type Tracker struct {
	cfg Config
	// tracks is kept in creation order; the matching tie-break is defined
	// as first candidate encountered in that order.
	tracks []*Track
	nextID uint64
	lastTS float64
}

// New creates a tracker with the given config.
func New(cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tracker config")
	}
	return &Tracker{cfg: cfg}, nil
}

// NewDefault creates a tracker with DefaultConfig.
func NewDefault() *Tracker {
	return &Tracker{cfg: DefaultConfig()}
}

// Update processes one frame of detections using the internal frame
// clock, which advances one unit per call.
func (t *Tracker) Update(dets []Detection) []TrackedDetection {
	return t.UpdateAt(dets, t.lastTS+1)
}

// UpdateAt processes one frame of detections at a caller-supplied
// timestamp (frame units). Stale tracks are evicted first, then each
// detection is matched greedily in input order against the live tracks;
// unmatched detections open new tracks. The result carries one enriched
// detection per input detection, in input order. UpdateAt never fails:
// an empty input yields an empty output and degenerate boxes simply
// never match.
func (t *Tracker) UpdateAt(dets []Detection, timestamp float64) []TrackedDetection {
	t.lastTS = timestamp

	// Eviction pass. Lazy, at frame start; no separate timer.
	live := t.tracks[:0]
	for _, tr := range t.tracks {
		if timestamp-tr.LastSeen > t.cfg.MaxAge {
			continue
		}
		live = append(live, tr)
	}
	for i := len(live); i < len(t.tracks); i++ {
		t.tracks[i] = nil
	}
	t.tracks = live

	out := make([]TrackedDetection, 0, len(dets))
	// Each track may be claimed by at most one detection per frame; a
	// track opened this frame counts as claimed by the detection that
	// opened it.
	claimed := make(map[uint64]struct{}, len(t.tracks))

	for _, det := range dets {
		sample := TimedPoint{X: det.BBox.X, Y: det.BBox.Y, Timestamp: timestamp}

		best := t.bestMatch(det, claimed, timestamp)
		if best == nil {
			tr := t.register(det.Class, sample)
			claimed[tr.TrackingID] = struct{}{}
			out = append(out, TrackedDetection{
				Detection:     det,
				TrackingID:    tr.TrackingID,
				FramesTracked: 1,
				LastSeen:      timestamp,
			})
			continue
		}

		claimed[best.TrackingID] = struct{}{}
		best.observe(sample, t.cfg.MaxHistory)
		out = append(out, TrackedDetection{
			Detection:     det,
			TrackingID:    best.TrackingID,
			IsMoving:      best.isMoving(t.cfg.MotionWindow, t.cfg.MotionMinSamples, t.cfg.MotionThreshold),
			Velocity:      best.velocity(),
			FramesTracked: len(best.Positions),
			LastSeen:      best.LastSeen,
		})
	}
	return out
}

// bestMatch runs the greedy association for one detection: candidates
// are visited in creation order, the highest IoU strictly above the
// threshold wins, ties go to the first candidate encountered. The
// candidate box is synthesized from the track's last position and the
// new detection's size.
func (t *Tracker) bestMatch(det Detection, claimed map[uint64]struct{}, timestamp float64) *Track {
	var best *Track
	bestIoU := t.cfg.IoUThreshold
	for _, tr := range t.tracks {
		if _, taken := claimed[tr.TrackingID]; taken {
			continue
		}
		if tr.Class != det.Class {
			continue
		}
		if timestamp-tr.LastSeen > t.cfg.MaxAge {
			continue
		}
		iou := IoU(det.BBox, tr.matchBox(det.BBox.Width, det.BBox.Height))
		if iou > bestIoU {
			bestIoU = iou
			best = tr
		}
	}
	return best
}

func (t *Tracker) register(class string, p TimedPoint) *Track {
	t.nextID++
	tr := newTrack(t.nextID, class, p, t.cfg.MaxHistory)
	t.tracks = append(t.tracks, tr)
	return tr
}

// Reset clears all tracks and rewinds the identity counter and frame
// clock, ready for a new detection session.
func (t *Tracker) Reset() {
	t.tracks = nil
	t.nextID = 0
	t.lastTS = 0
}

// Snapshot returns deep copies of the live tracks in creation order,
// including tracks not matched this frame but not yet evicted. Mutating
// the result does not affect tracker state.
func (t *Tracker) Snapshot() []Track {
	out := make([]Track, 0, len(t.tracks))
	for _, tr := range t.tracks {
		out = append(out, tr.clone())
	}
	return out
}

// Len returns the number of live tracks.
func (t *Tracker) Len() int {
	return len(t.tracks)
}

package track

import "gonum.org/v1/gonum/stat"

// Track is the tracker's persistent state for one object identity. A
// track always holds at least one position sample; it is evicted rather
// than left empty.
type Track struct {
	// TrackingID is assigned at creation and never reused within a
	// tracker instance's lifetime.
	TrackingID uint64
	// Class is fixed at creation; a track never changes class.
	Class string
	// Positions holds the most recent samples, oldest first.
	Positions []TimedPoint
	// LastSeen is the timestamp of the most recent matched detection.
	LastSeen float64
}

func newTrack(id uint64, class string, p TimedPoint, maxHistory int) *Track {
	tr := &Track{
		TrackingID: id,
		Class:      class,
		Positions:  make([]TimedPoint, 0, maxHistory),
		LastSeen:   p.Timestamp,
	}
	tr.Positions = append(tr.Positions, p)
	return tr
}

// observe appends a position sample, trims the history to maxHistory
// entries (oldest first) and refreshes LastSeen.
func (tr *Track) observe(p TimedPoint, maxHistory int) {
	tr.Positions = append(tr.Positions, p)
	if len(tr.Positions) > maxHistory {
		tr.Positions = tr.Positions[1:]
	}
	tr.LastSeen = p.Timestamp
}

func (tr *Track) lastPosition() TimedPoint {
	return tr.Positions[len(tr.Positions)-1]
}

// matchBox builds the synthetic box used for association: the track's
// last known center with the candidate detection's size.
func (tr *Track) matchBox(width, height float64) BBox {
	last := tr.lastPosition()
	return BBox{X: last.X, Y: last.Y, Width: width, Height: height}
}

// velocity derives pixels-per-frame velocity from the two most recent
// samples. The time delta is floored to 1 so samples sharing a timestamp
// cannot divide by zero. Fewer than two samples means no measurable
// motion yet.
func (tr *Track) velocity() Point {
	n := len(tr.Positions)
	if n < 2 {
		return Point{}
	}
	prev, last := tr.Positions[n-2], tr.Positions[n-1]
	dt := last.Timestamp - prev.Timestamp
	if dt < 1 {
		dt = 1
	}
	return Point{
		X: (last.X - prev.X) / dt,
		Y: (last.Y - prev.Y) / dt,
	}
}

// isMoving classifies the track as moving when the mean consecutive-pair
// displacement over the last window samples exceeds threshold. At least
// minSamples stored samples are required so a single noisy jump does not
// flip the flag.
func (tr *Track) isMoving(window, minSamples int, threshold float64) bool {
	if len(tr.Positions) < minSamples {
		return false
	}
	recent := tr.Positions
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}
	steps := make([]float64, 0, len(recent)-1)
	for i := 1; i < len(recent); i++ {
		steps = append(steps, euclideanDistance(
			Point{X: recent[i-1].X, Y: recent[i-1].Y},
			Point{X: recent[i].X, Y: recent[i].Y},
		))
	}
	return stat.Mean(steps, nil) > threshold
}

// clone returns a deep copy for diagnostic snapshots.
func (tr *Track) clone() Track {
	cp := *tr
	cp.Positions = append([]TimedPoint(nil), tr.Positions...)
	return cp
}

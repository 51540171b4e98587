package track

import "testing"

func seedTrack(points ...TimedPoint) *Track {
	tr := newTrack(1, "person", points[0], 10)
	for _, p := range points[1:] {
		tr.observe(p, 10)
	}
	return tr
}

func TestVelocitySign(t *testing.T) {
	tr := seedTrack(
		TimedPoint{X: 0, Y: 0, Timestamp: 0},
		TimedPoint{X: 10, Y: 5, Timestamp: 1},
	)
	v := tr.velocity()
	if v.X != 10 || v.Y != 5 {
		t.Errorf("Expected velocity {10 5}, got {%f %f}", v.X, v.Y)
	}
}

func TestVelocitySingleSample(t *testing.T) {
	tr := seedTrack(TimedPoint{X: 7, Y: 7, Timestamp: 0})
	v := tr.velocity()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("Expected zero velocity for single sample, got {%f %f}", v.X, v.Y)
	}
}

func TestVelocityTimestampGap(t *testing.T) {
	// A match after skipped frames spreads the displacement over the gap.
	tr := seedTrack(
		TimedPoint{X: 0, Y: 0, Timestamp: 0},
		TimedPoint{X: 10, Y: 0, Timestamp: 2},
	)
	v := tr.velocity()
	if v.X != 5 || v.Y != 0 {
		t.Errorf("Expected velocity {5 0}, got {%f %f}", v.X, v.Y)
	}
}

func TestVelocitySharedTimestamp(t *testing.T) {
	// The delta is floored to 1 so coincident timestamps do not divide
	// by zero.
	tr := seedTrack(
		TimedPoint{X: 0, Y: 0, Timestamp: 4},
		TimedPoint{X: 8, Y: 6, Timestamp: 4},
	)
	v := tr.velocity()
	if v.X != 8 || v.Y != 6 {
		t.Errorf("Expected velocity {8 6}, got {%f %f}", v.X, v.Y)
	}
}

func TestIsMovingStationary(t *testing.T) {
	tr := seedTrack(
		TimedPoint{X: 0, Y: 0, Timestamp: 0},
		TimedPoint{X: 0, Y: 0, Timestamp: 1},
		TimedPoint{X: 0, Y: 0, Timestamp: 2},
	)
	if tr.isMoving(5, 3, 5.0) {
		t.Error("Stationary track classified as moving")
	}
}

func TestIsMovingSteadyMotion(t *testing.T) {
	tr := seedTrack(
		TimedPoint{X: 0, Y: 0, Timestamp: 0},
		TimedPoint{X: 10, Y: 0, Timestamp: 1},
		TimedPoint{X: 20, Y: 0, Timestamp: 2},
	)
	// Average step displacement 10 > threshold 5.
	if !tr.isMoving(5, 3, 5.0) {
		t.Error("Track moving 10 px/frame classified as still")
	}
}

func TestIsMovingNeedsMinSamples(t *testing.T) {
	tr := seedTrack(
		TimedPoint{X: 0, Y: 0, Timestamp: 0},
		TimedPoint{X: 50, Y: 50, Timestamp: 1},
	)
	if tr.isMoving(5, 3, 5.0) {
		t.Error("Track with 2 samples classified as moving")
	}
}

func TestIsMovingSmoothsSingleJump(t *testing.T) {
	// One large jump in an otherwise still history averages out below
	// the threshold over the window.
	tr := seedTrack(
		TimedPoint{X: 0, Y: 0, Timestamp: 0},
		TimedPoint{X: 0, Y: 0, Timestamp: 1},
		TimedPoint{X: 0, Y: 0, Timestamp: 2},
		TimedPoint{X: 12, Y: 0, Timestamp: 3},
		TimedPoint{X: 12, Y: 0, Timestamp: 4},
	)
	// Steps over window of 5: 0, 0, 12, 0 -> mean 3 < 5.
	if tr.isMoving(5, 3, 5.0) {
		t.Error("Single-jump jitter classified as moving")
	}
}

func TestObserveTrimsHistory(t *testing.T) {
	tr := seedTrack(TimedPoint{X: 0, Y: 0, Timestamp: 0})
	for i := 1; i <= 20; i++ {
		tr.observe(TimedPoint{X: float64(i), Y: 0, Timestamp: float64(i)}, 10)
	}
	if len(tr.Positions) != 10 {
		t.Fatalf("Expected history trimmed to 10, got %d", len(tr.Positions))
	}
	// Oldest entries are evicted first.
	if tr.Positions[0].Timestamp != 11 {
		t.Errorf("Expected oldest retained sample at t=11, got t=%f", tr.Positions[0].Timestamp)
	}
	if tr.LastSeen != 20 {
		t.Errorf("Expected lastSeen 20, got %f", tr.LastSeen)
	}
}

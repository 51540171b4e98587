package track

// Detection is a single detector output for one frame. Detections carry
// no identity across frames; the tracker reconstructs it.
type Detection struct {
	// Class is a hard filter for matching: a detection can only claim a
	// track of the same class.
	Class      string
	BBox       BBox
	Confidence float64
}

// TrackedDetection is a Detection enriched with the identity and motion
// state of the track it was associated with.
type TrackedDetection struct {
	Detection

	TrackingID uint64
	IsMoving   bool
	// Velocity is measured in pixels per frame unit.
	Velocity Point
	// FramesTracked is the number of position samples currently held for
	// the track, 1 up to the configured history bound.
	FramesTracked int
	LastSeen      float64
}

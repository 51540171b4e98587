package track

import "math"

// Point is a position in image pixel space.
type Point struct {
	X float64
	Y float64
}

// TimedPoint is a position sample stamped with a frame-unit timestamp.
type TimedPoint struct {
	X         float64
	Y         float64
	Timestamp float64
}

// BBox is an axis-aligned bounding box given as center plus size,
// matching the detector's output convention.
type BBox struct {
	X      float64 // center x
	Y      float64 // center y
	Width  float64
	Height float64
}

// NewBBox builds a center-based box.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// Center returns the box center.
func (b BBox) Center() Point {
	return Point{X: b.X, Y: b.Y}
}

// Area returns the box area.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// IoU calculates Intersection over Union between two center-based boxes.
// Disjoint or degenerate (zero-area) boxes yield 0, never a negative value.
func IoU(a, b BBox) float64 {
	xA := math.Max(a.X-a.Width/2.0, b.X-b.Width/2.0)
	yA := math.Max(a.Y-a.Height/2.0, b.Y-b.Height/2.0)
	xB := math.Min(a.X+a.Width/2.0, b.X+b.Width/2.0)
	yB := math.Min(a.Y+a.Height/2.0, b.Y+b.Height/2.0)

	interArea := math.Max(0, xB-xA) * math.Max(0, yB-yA)
	if interArea == 0 {
		return 0.0
	}
	return interArea / (a.Area() + b.Area() - interArea)
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(p1.X-p2.X, 2) + math.Pow(p1.Y-p2.Y, 2))
}

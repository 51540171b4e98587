package ingest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/delta-vision/frametrack/track"
)

const fixture = `{"frame": 12, "objects": [{"label": "traffic light", "confidence": 0.82, "bbox": {"x": 10, "y": 20, "width": 30, "height": 40}, "priority": "critical"}, {"label": "person", "confidence": 0.67, "bbox": {"x": 200, "y": 100, "width": 50, "height": 120}}]}`

func TestDecodeFrame(t *testing.T) {
	rec, err := DecodeFrame([]byte(fixture))
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}

	want := FrameRecord{
		Frame: 12,
		Objects: []ObjectRecord{
			{
				Label:      "traffic light",
				Confidence: 0.82,
				BBox:       BoxRecord{X: 10, Y: 20, Width: 30, Height: 40},
				Priority:   "critical",
			},
			{
				Label:      "person",
				Confidence: 0.67,
				BBox:       BoxRecord{X: 200, Y: 100, Width: 50, Height: 120},
			},
		},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Unexpected record (-want +got):\n%s", diff)
	}
}

func TestDecodeFrame_Malformed(t *testing.T) {
	if _, err := DecodeFrame([]byte(`{"frame": `)); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestDetectionsCornerToCenter(t *testing.T) {
	rec, err := DecodeFrame([]byte(fixture))
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}

	dets := rec.Detections()
	want := []track.Detection{
		{
			Class:      "traffic light",
			Confidence: 0.82,
			BBox:       track.NewBBox(25, 40, 30, 40),
		},
		{
			Class:      "person",
			Confidence: 0.67,
			BBox:       track.NewBBox(225, 160, 50, 120),
		},
	}
	if diff := cmp.Diff(want, dets); diff != "" {
		t.Errorf("Unexpected detections (-want +got):\n%s", diff)
	}
}

func TestReadFrames(t *testing.T) {
	stream := fixture + "\n\n" + `{"frame": 13, "objects": []}` + "\n"

	frames, err := ReadFrames(strings.NewReader(stream))
	if err != nil {
		t.Fatalf("ReadFrames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}
	if frames[0].Frame != 12 || frames[1].Frame != 13 {
		t.Errorf("Unexpected frame numbers: %f, %f", frames[0].Frame, frames[1].Frame)
	}
}

func TestReadFrames_BadLineReportsPosition(t *testing.T) {
	stream := fixture + "\nnot json\n"

	_, err := ReadFrames(strings.NewReader(stream))
	if err == nil {
		t.Fatal("Expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected error to name line 2, got: %v", err)
	}
}

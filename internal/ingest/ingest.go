// Package ingest adapts the upstream detection service's wire format to
// the tracker's detection types. The service reports corner-based
// integer boxes; the tracker consumes center-based float boxes.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/delta-vision/frametrack/track"
)

// BoxRecord is the upstream box convention: top-left corner plus size,
// integer pixels.
type BoxRecord struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ObjectRecord mirrors one detected object as the detection service
// reports it.
type ObjectRecord struct {
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	BBox       BoxRecord `json:"bbox"`
	// Priority is the service's own alert hint, passed through untouched.
	Priority string `json:"priority,omitempty"`
}

// FrameRecord is one frame's worth of detections.
type FrameRecord struct {
	Frame   float64        `json:"frame"`
	Objects []ObjectRecord `json:"objects"`
}

// DecodeFrame decodes a single frame record.
func DecodeFrame(data []byte) (FrameRecord, error) {
	var rec FrameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return FrameRecord{}, errors.Wrap(err, "cannot decode frame record")
	}
	return rec, nil
}

// Detections converts the frame's corner-based integer boxes into the
// center-based detections the tracker consumes.
func (r FrameRecord) Detections() []track.Detection {
	dets := make([]track.Detection, 0, len(r.Objects))
	for _, obj := range r.Objects {
		w := float64(obj.BBox.Width)
		h := float64(obj.BBox.Height)
		dets = append(dets, track.Detection{
			Class:      obj.Label,
			Confidence: obj.Confidence,
			BBox: track.BBox{
				X:      float64(obj.BBox.X) + w/2.0,
				Y:      float64(obj.BBox.Y) + h/2.0,
				Width:  w,
				Height: h,
			},
		})
	}
	return dets
}

// ReadFrames decodes a JSONL capture stream, one frame record per line.
// Blank lines are skipped.
func ReadFrames(r io.Reader) ([]FrameRecord, error) {
	scanner := bufio.NewScanner(r)
	// Frames with many objects can exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	frames := make([]FrameRecord, 0)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		rec, err := DecodeFrame(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		frames = append(frames, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot read capture stream")
	}
	return frames, nil
}

// Package alert ranks tracked detections for the downstream audio and
// visual alert layer.
package alert

import "strings"

// Level is the alert urgency for one detection.
type Level string

const (
	Critical Level = "critical"
	High     Level = "high"
	Normal   Level = "normal"
	Low      Level = "low"
)

// Traffic-control objects the user must never miss.
var criticalObjects = []string{"traffic light", "stop sign", "fire", "emergency vehicle"}

// Signalling objects that usually warrant a prompt.
var highObjects = []string{"brake light", "turn signal", "yield sign", "warning sign", "cone"}

// Priority ranks a detection by its label, escalated one step when the
// tracker classifies the object as moving.
func Priority(label string, moving bool) Level {
	l := strings.ToLower(label)
	switch {
	case matchesAny(l, criticalObjects):
		if moving {
			return Critical
		}
		return High
	case matchesAny(l, highObjects):
		if moving {
			return High
		}
		return Normal
	default:
		if moving {
			return Normal
		}
		return Low
	}
}

func matchesAny(label string, objects []string) bool {
	for _, obj := range objects {
		if strings.Contains(label, obj) {
			return true
		}
	}
	return false
}

package alert

import "testing"

func TestPriority(t *testing.T) {
	cases := []struct {
		label  string
		moving bool
		want   Level
	}{
		{"traffic light", true, Critical},
		{"traffic light", false, High},
		{"Stop Sign", true, Critical},
		{"emergency vehicle ahead", false, High},
		{"brake light", true, High},
		{"cone", false, Normal},
		{"person", true, Normal},
		{"person", false, Low},
		{"bench", false, Low},
	}
	for _, c := range cases {
		if got := Priority(c.label, c.moving); got != c.want {
			t.Errorf("Priority(%q, %v) = %s, want %s", c.label, c.moving, got, c.want)
		}
	}
}

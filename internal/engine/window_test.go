package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 10, 12, hour, min, 0, 0, time.UTC)
}

func TestConflicts(t *testing.T) {
	base := Window{Start: at(10, 0), Duration: 2 * time.Hour} // ends 12:00

	tests := []struct {
		name     string
		other    Window
		conflict bool
	}{
		{"gap of 10 minutes", Window{Start: at(12, 10), Duration: time.Hour}, true},
		{"gap of exactly the buffer", Window{Start: at(12, 15), Duration: time.Hour}, false},
		{"gap of 20 minutes", Window{Start: at(12, 20), Duration: time.Hour}, false},
		{"true overlap", Window{Start: at(11, 0), Duration: time.Hour}, true},
		{"contained window", Window{Start: at(10, 30), Duration: 30 * time.Minute}, true},
		{"identical start", Window{Start: at(10, 0), Duration: time.Hour}, true},
		{"earlier with short gap", Window{Start: at(8, 0), Duration: 110 * time.Minute}, true},
		{"earlier with enough gap", Window{Start: at(7, 0), Duration: 2 * time.Hour}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, Conflicts(base, tt.other))
			// the predicate is symmetric
			assert.Equal(t, tt.conflict, Conflicts(tt.other, base))
		})
	}
}

func TestWindowEnd(t *testing.T) {
	w := Window{Start: at(18, 30), Duration: 95 * time.Minute}
	assert.Equal(t, at(20, 5), w.End())
}

package engine

import "time"

// Buffer is the mandatory technical pause between two sessions sharing
// a hall.  Two sessions conflict when the gap between them is shorter
// than this.
const Buffer = 15 * time.Minute

// Window is the half-open interval [Start, Start+Duration) occupied by
// a session.
type Window struct {
	Start    time.Time
	Duration time.Duration
}

// End returns the exclusive end instant of the window.
func (w Window) End() time.Time { return w.Start.Add(w.Duration) }

// Conflicts reports whether two windows sharing a hall violate the
// buffer requirement.  The gap is the time elapsed between the end of
// the earlier window and the start of the later one; a negative gap is
// a true overlap.  The predicate is symmetric.
func Conflicts(a, b Window) bool {
	if a.Start.After(b.Start) {
		a, b = b, a
	}
	return b.Start.Sub(a.End()) < Buffer
}

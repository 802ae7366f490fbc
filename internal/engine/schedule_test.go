package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlacement(t *testing.T) {
	timetable := []Placement{
		{SessionID: "s-a", Window: Window{Start: at(10, 0), Duration: 2 * time.Hour}},
		{SessionID: "s-b", Window: Window{Start: at(15, 0), Duration: 90 * time.Minute}},
	}

	t.Run("rejects a 10 minute gap", func(t *testing.T) {
		err := ValidatePlacement(Window{Start: at(12, 10), Duration: time.Hour}, timetable, "")
		require.Error(t, err)
		reason, ok := ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, ReasonScheduleConflict, reason)
	})

	t.Run("admits a 20 minute gap", func(t *testing.T) {
		err := ValidatePlacement(Window{Start: at(12, 20), Duration: 2*time.Hour + 20*time.Minute}, timetable, "")
		assert.NoError(t, err)
	})

	t.Run("tests every session, not only the nearest", func(t *testing.T) {
		// clears s-a comfortably but lands on s-b
		err := ValidatePlacement(Window{Start: at(14, 0), Duration: time.Hour}, timetable, "")
		reason, _ := ReasonOf(err)
		assert.Equal(t, ReasonScheduleConflict, reason)
	})

	t.Run("editing a session excludes itself", func(t *testing.T) {
		// same slot as s-a: conflicts as a new session, admitted as an edit of s-a
		w := Window{Start: at(10, 0), Duration: 2 * time.Hour}
		require.Error(t, ValidatePlacement(w, timetable, ""))
		assert.NoError(t, ValidatePlacement(w, timetable, "s-a"))
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		err := ValidatePlacement(Window{Start: at(9, 0), Duration: 0}, nil, "")
		reason, _ := ReasonOf(err)
		assert.Equal(t, ReasonInvalidInput, reason)
	})

	t.Run("empty hall admits anything", func(t *testing.T) {
		assert.NoError(t, ValidatePlacement(Window{Start: at(3, 0), Duration: time.Minute}, nil, ""))
	})
}

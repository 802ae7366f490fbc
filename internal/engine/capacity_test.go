package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCapacity(t *testing.T) {
	tests := []struct {
		name                      string
		occupied, capacity, delta int
		want                      Reason
	}{
		{"three tickets over a 50 seat hall at 48", 48, 50, 3, ReasonCapacityExceeded},
		{"two tickets fill the hall exactly", 48, 50, 2, ""},
		{"zero delta always admits", 50, 50, 0, ""},
		{"reduction always admits", 50, 50, -4, ""},
		{"single ticket in a full hall", 100, 100, 1, ReasonCapacityExceeded},
		{"empty session", 0, 1, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCapacity(tt.occupied, tt.capacity, tt.delta)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			reason, ok := ReasonOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, reason)
		})
	}
}

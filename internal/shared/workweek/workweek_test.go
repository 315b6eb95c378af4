package workweek_test

import (
	"testing"

	"leavehub/internal/shared/workweek"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"full work week", "2025-01-06", "2025-01-10", 5},
		{"weekend only", "2025-01-04", "2025-01-05", 0},
		{"friday to monday", "2025-01-10", "2025-01-13", 2},
		{"single weekday", "2025-01-08", "2025-01-08", 1},
		{"single saturday", "2025-01-11", "2025-01-11", 0},
		{"two full weeks", "2025-01-06", "2025-01-17", 10},
		{"spanning month boundary", "2025-01-30", "2025-02-04", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := workweek.Count(tt.start, tt.end)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCount_EndBeforeStart(t *testing.T) {
	_, err := workweek.Count("2025-01-10", "2025-01-06")
	assert.ErrorIs(t, err, workweek.ErrEndBeforeStart)
}

func TestCount_UnparsableDates(t *testing.T) {
	for _, pair := range [][2]string{
		{"2025-13-01", "2025-01-10"},
		{"not-a-date", "2025-01-10"},
		{"2025-01-06", "10/01/2025"},
		{"", "2025-01-10"},
	} {
		_, err := workweek.Count(pair[0], pair[1])
		assert.ErrorIs(t, err, workweek.ErrUnparsableDate)
	}
}

package roundservice

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTeeTimeParser(t *testing.T) {
	now := time.Date(2027, 6, 5, 8, 17, 42, 0, time.UTC)
	p := NewTeeTimeParser(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name      string
		date      string
		startTime string
		want      time.Time
	}{
		{
			name: "empty input keeps now",
			want: time.Date(2027, 6, 5, 8, 17, 0, 0, time.UTC),
		},
		{
			name:      "iso date and 24 hour time",
			date:      "2027-06-12",
			startTime: "14:05",
			want:      time.Date(2027, 6, 12, 14, 5, 0, 0, time.UTC),
		},
		{
			name:      "compact time",
			startTime: "932am",
			want:      time.Date(2027, 6, 5, 9, 32, 0, 0, time.UTC),
		},
		{
			name:      "today with hour",
			date:      "today",
			startTime: "3pm",
			want:      time.Date(2027, 6, 5, 15, 0, 0, 0, time.UTC),
		},
		{
			name:      "nonsense falls back",
			startTime: "xyz",
			want:      time.Date(2027, 6, 5, 8, 17, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.date, tt.startTime, now)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestNormalizeTeeTime(t *testing.T) {
	assert.Equal(t, "today at 9:32 am", normalizeTeeTime("Today 932am"))
	assert.Equal(t, "tomorrow at 2pm", normalizeTeeTime("tomorrow at 2pm"))
}

package rounddomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseManualInput(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"145", 145, true},
		{" 145m", 145, true},
		{"-3", -3, true},
		{"+2", 2, true},
		{"", 0, false},
		{"ver", 0, false},
		{"m145", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseManualInput(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseLie(t *testing.T) {
	l, ok := ParseLie(" Bunker ")
	assert.True(t, ok)
	assert.Equal(t, LieBunker, l)

	_, ok = ParseLie("water")
	assert.False(t, ok)
}

func TestTallyShots(t *testing.T) {
	shots := []Shot{
		{Club: "Driver"},
		{Club: ClubPenalty, PenaltyStrokes: 1},
		{Club: "Ijzer 7"},
		{Club: "putter", Putts: 2},
		{Club: ClubPutter},
	}
	got := TallyShots(shots)
	assert.Equal(t, LedgerTotals{StrokesPlayed: 2, Putts: 3, Penalties: 1}, got)
	assert.Equal(t, 6, got.Score())
}

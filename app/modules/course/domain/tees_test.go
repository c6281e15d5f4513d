package coursedomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableTees(t *testing.T) {
	tests := []struct {
		name      string
		distances map[string]int
		want      []string
	}{
		{
			name:      "ordered by tee order",
			distances: map[string]int{"rood": 280, "wit": 360, "blauw": 300, "geel": 340, "oranje": 320},
			want:      []string{"Wit", "Geel", "Oranje", "Blauw", "Rood"},
		},
		{
			name:      "zero distances dropped",
			distances: map[string]int{"geel": 340, "wit": 0, "rood": -1},
			want:      []string{"Geel"},
		},
		{
			name:      "unknown colours last",
			distances: map[string]int{"zwart": 390, "groen": 250, "geel": 340},
			want:      []string{"Geel", "Groen", "Zwart"},
		},
		{
			name:      "keys normalised",
			distances: map[string]int{"GEEL": 340},
			want:      []string{"Geel"},
		},
		{
			name:      "empty",
			distances: nil,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvailableTees(tt.distances))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Oranje", Capitalize("oranje"))
	assert.Equal(t, "Éclair", Capitalize("éclair"))
	assert.Equal(t, "", Capitalize(""))
}

func TestSortTeeNames(t *testing.T) {
	assert.Equal(t, []string{"Wit", "Geel", "Rood"}, SortTeeNames([]string{"rood", "Geel", "wit", " "}))
	assert.Equal(t, []string{}, SortTeeNames(nil))
}

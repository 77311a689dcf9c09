package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeetInchesToMm(t *testing.T) {
	tests := []struct {
		feet   int
		inches int
		want   float64
	}{
		{0, 0, 0},
		{0, 1, 25.4},
		{1, 0, 304.8},
		{10, 0, 3048},
		{12, 0, 3657.6},
		{5, 6, 1676.4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FeetInchesToMm(tt.feet, tt.inches))
	}
}

func TestMmToFeet(t *testing.T) {
	assert.Equal(t, 1.0, MmToFeet(304.8))
	assert.Equal(t, 10.0, MmToFeet(3048))
	assert.Equal(t, 0.0, MmToFeet(0))
}

func TestMm2ToSqft(t *testing.T) {
	assert.Equal(t, 1.0, Mm2ToSqft(92903.04))
	assert.Equal(t, 120.0, Mm2ToSqft(120*92903.04))
}

func TestRoundTrip(t *testing.T) {
	for feet := 1; feet <= 50; feet += 7 {
		mm := FeetInchesToMm(feet, 0)
		assert.InDelta(t, float64(feet), MmToFeet(mm), 0.01)
	}
}

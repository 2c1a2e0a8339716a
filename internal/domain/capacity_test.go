package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		percentage float64
		want       CapacityLevel
	}{
		{name: "empty", percentage: 0, want: CapacityNormal},
		{name: "just below warning", percentage: 69.9, want: CapacityNormal},
		{name: "warning boundary", percentage: 70, want: CapacityWarning},
		{name: "just below full", percentage: 89.9, want: CapacityWarning},
		{name: "full boundary", percentage: 90, want: CapacityFull},
		{name: "clamped maximum", percentage: 100, want: CapacityFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFor(tt.percentage))
		})
	}
}

func TestCapacityPercentageClamps(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 79.2, CapacityPercentage(792, 1000), 1e-9)
	assert.InDelta(t, 100.0, CapacityPercentage(1500, 1000), 1e-9)
	assert.Zero(t, CapacityPercentage(-5, 1000))
	assert.Zero(t, CapacityPercentage(10, 0))
}

func TestCapacityView(t *testing.T) {
	t.Parallel()

	c := Capacity{Consumed: 792, Limit: DefaultCapacityLimit}
	assert.Equal(t, "79%", c.Label())
	assert.Equal(t, CapacityWarning, c.Level())

	full := Capacity{Consumed: 2000, Limit: DefaultCapacityLimit}
	assert.Equal(t, "100%", full.Label())
	assert.Equal(t, CapacityFull, full.Level())
}

func TestValidateCapacityLimit(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateCapacityLimit(1000))
	assert.ErrorIs(t, ValidateCapacityLimit(0), ErrCapacityLimit)
	assert.ErrorIs(t, ValidateCapacityLimit(-1), ErrCapacityLimit)
}

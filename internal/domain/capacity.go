package domain

import (
	"fmt"
	"math"
)

type CapacityLevel string

const (
	CapacityNormal  CapacityLevel = "normal"
	CapacityWarning CapacityLevel = "warning"
	CapacityFull    CapacityLevel = "full"
)

const (
	DefaultCapacityLimit float64 = 1000

	WarningThreshold float64 = 70
	FullThreshold    float64 = 90
)

// Capacity is a read-only view of how much of the simulated context window has been consumed.
type Capacity struct {
	Consumed float64
	Limit    float64
}

// Percentage is clamped to [0, 100].
func (c Capacity) Percentage() float64 {
	return CapacityPercentage(c.Consumed, c.Limit)
}

func (c Capacity) Level() CapacityLevel {
	return LevelFor(c.Percentage())
}

// Label is the rounded percentage shown next to the capacity bar, e.g. "79%".
func (c Capacity) Label() string {
	return fmt.Sprintf("%d%%", DisplayPercent(c.Percentage()))
}

func CapacityPercentage(consumed, limit float64) float64 {
	if limit <= 0 || consumed <= 0 {
		return 0
	}
	return math.Min(consumed/limit, 1) * 100
}

func LevelFor(percentage float64) CapacityLevel {
	switch {
	case percentage >= FullThreshold:
		return CapacityFull
	case percentage >= WarningThreshold:
		return CapacityWarning
	default:
		return CapacityNormal
	}
}

func DisplayPercent(percentage float64) int {
	return int(math.Round(percentage))
}

func ValidateCapacityLimit(limit float64) error {
	if limit <= 0 || math.IsNaN(limit) || math.IsInf(limit, 0) {
		return fmt.Errorf("%w: %v", ErrCapacityLimit, limit)
	}
	return nil
}

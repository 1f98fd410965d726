// Package split implements the share calculation strategies used by the
// settlement summary: equal division, weighted custom division, and
// whole-unit rounding of a computed share.
package split

import (
	"errors"
	"math"
)

// Common errors
var (
	ErrNoParticipants = errors.New("split requires at least one participant")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrZeroShares     = errors.New("custom split requires a positive share total")
)

// RoundMode selects how a fractional share is mapped to a whole unit.
type RoundMode string

const (
	// RoundNearest rounds half away from zero, so 0.5 becomes 1.
	RoundNearest RoundMode = "round"
	RoundUp      RoundMode = "ceil"
	RoundDown    RoundMode = "floor"
)

// Equal divides amount evenly over n participants. The result is not
// rounded; callers that want whole units apply Round themselves.
func Equal(amount float64, n int) (float64, error) {
	if n <= 0 {
		return 0, ErrNoParticipants
	}
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	return amount / float64(n), nil
}

// Custom divides amount proportionally to the given weights. A weight of 2
// owes twice as much as a weight of 1.
func Custom(amount float64, weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, ErrNoParticipants
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil, ErrZeroShares
	}

	shares := make([]float64, len(weights))
	for i, w := range weights {
		shares[i] = amount * w / total
	}
	return shares, nil
}

// Round maps a share to a whole currency unit using the given mode.
// Unknown modes fall back to RoundNearest.
func Round(share float64, mode RoundMode) float64 {
	switch mode {
	case RoundUp:
		return math.Ceil(share)
	case RoundDown:
		return math.Floor(share)
	default:
		return math.Round(share)
	}
}

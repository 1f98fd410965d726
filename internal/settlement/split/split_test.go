package split

import (
	"errors"
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		n       int
		want    float64
		wantErr error
	}{
		{name: "even division", amount: 100, n: 4, want: 25},
		{name: "uneven division is not rounded", amount: 100, n: 3, want: 100.0 / 3.0},
		{name: "single participant", amount: 42.5, n: 1, want: 42.5},
		{name: "zero amount", amount: 0, n: 3, want: 0},
		{name: "zero participants", amount: 100, n: 0, wantErr: ErrNoParticipants},
		{name: "negative participants", amount: 100, n: -2, wantErr: ErrNoParticipants},
		{name: "negative amount", amount: -10, n: 2, wantErr: ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equal(tt.amount, tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Equal() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustom(t *testing.T) {
	t.Run("proportional shares", func(t *testing.T) {
		got, err := Custom(90, []float64{1, 2, 3})
		if err != nil {
			t.Fatalf("Custom() error = %v", err)
		}
		want := []float64{15, 30, 45}
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Errorf("share[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("shares sum to the amount", func(t *testing.T) {
		got, err := Custom(100, []float64{1, 1, 1})
		if err != nil {
			t.Fatalf("Custom() error = %v", err)
		}
		var sum float64
		for _, s := range got {
			sum += s
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("shares sum to %v, want 100", sum)
		}
	})

	t.Run("no participants", func(t *testing.T) {
		if _, err := Custom(100, nil); !errors.Is(err, ErrNoParticipants) {
			t.Errorf("Custom() error = %v, want %v", err, ErrNoParticipants)
		}
	})

	t.Run("zero weight total", func(t *testing.T) {
		if _, err := Custom(100, []float64{0, 0}); !errors.Is(err, ErrZeroShares) {
			t.Errorf("Custom() error = %v, want %v", err, ErrZeroShares)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		if _, err := Custom(-1, []float64{1}); !errors.Is(err, ErrNegativeAmount) {
			t.Errorf("Custom() error = %v, want %v", err, ErrNegativeAmount)
		}
	})
}

func TestRound(t *testing.T) {
	tests := []struct {
		name  string
		share float64
		mode  RoundMode
		want  float64
	}{
		{name: "nearest rounds down below half", share: 33.333, mode: RoundNearest, want: 33},
		{name: "nearest rounds half away from zero", share: 33.5, mode: RoundNearest, want: 34},
		{name: "ceil", share: 33.1, mode: RoundUp, want: 34},
		{name: "floor", share: 33.9, mode: RoundDown, want: 33},
		{name: "whole value unchanged", share: 25, mode: RoundNearest, want: 25},
		{name: "unknown mode falls back to nearest", share: 10.6, mode: RoundMode("banker"), want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.share, tt.mode); got != tt.want {
				t.Errorf("Round(%v, %q) = %v, want %v", tt.share, tt.mode, got, tt.want)
			}
		})
	}
}

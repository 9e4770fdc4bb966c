package m3tm

import (
	"errors"
	"math"
	"testing"
)

func TestNewSampleInitialSnapshot(t *testing.T) {
	s, err := NewSample(Nickel(), 273.15, 273.15, 0)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	if s.Hist.Len() != 1 {
		t.Fatalf("expected 1 history entry, got %d", s.Hist.Len())
	}
	if s.Hist.T[0] != 0 || s.Hist.Te[0] != 273.15 || s.Hist.Tph[0] != 273.15 {
		t.Error("initial snapshot does not match construction inputs")
	}
	if s.Hist.M[0] != s.M {
		t.Error("last history entry must equal live state")
	}
	if s.M <= 0.99 || s.M > 1 {
		t.Errorf("room-temperature nickel magnetization should be near saturation, got %f", s.M)
	}
}

func TestNewSampleInvalid(t *testing.T) {
	tests := []struct {
		name     string
		mat      Material
		te, tph  float64
		expected error
	}{
		{"zero te", Nickel(), 0, 300, ErrInvalidInput},
		{"negative tph", Nickel(), 300, -5, ErrInvalidInput},
		{"bad material", Material{}, 300, 300, ErrBadMaterial},
		{"above curie", Nickel(), 2000, 2000, ErrNoConvergence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSample(tt.mat, tt.te, tt.tph, 0)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
			if s != nil {
				t.Error("no partial sample should be returned on error")
			}
		})
	}
}

func TestStepHistoryGrowth(t *testing.T) {
	s, err := NewSample(Nickel(), 273.15, 273.15, 0)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	const n = 500
	const dt = 1e-16
	for i := 0; i < n; i++ {
		if err := s.Step(dt, 0); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	if s.Hist.Len() != n+1 {
		t.Fatalf("expected %d history entries, got %d", n+1, s.Hist.Len())
	}
	for i := 1; i < s.Hist.Len(); i++ {
		if s.Hist.T[i] <= s.Hist.T[i-1] {
			t.Fatalf("history times not strictly increasing at %d", i)
		}
	}
	if math.Abs(s.Hist.T[n]-n*dt) > n*dt*1e-12 {
		t.Errorf("final time %.17g does not match cumulative dt %.17g", s.Hist.T[n], n*dt)
	}
	if s.Hist.Te[n] != s.Te || s.Hist.Tph[n] != s.Tph || s.Hist.M[n] != s.M {
		t.Error("last history entry must equal live state")
	}
}

func TestStepZeroForcingStationary(t *testing.T) {
	s, err := NewSample(Nickel(), 300, 300, 0)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	m0 := s.M

	for i := 0; i < 2000; i++ {
		if err := s.Step(1e-16, 0); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	if s.Te != 300 || s.Tph != 300 {
		t.Errorf("temperatures drifted without forcing: Te=%g Tph=%g", s.Te, s.Tph)
	}
	if math.Abs(s.M-m0) > 1e-6 {
		t.Errorf("magnetization drifted without forcing: %g -> %g", m0, s.M)
	}
}

func TestStepDemagnetizationDirection(t *testing.T) {
	s, err := NewSample(Nickel(), 300, 300, 0)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	// steady heating of the electron bath
	for i := 0; i < 200; i++ {
		if err := s.Step(1e-17, 1e23); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	if s.Te <= 300 {
		t.Fatalf("electron bath should have heated, Te=%g", s.Te)
	}
	for i := 1; i < s.Hist.Len(); i++ {
		if s.Hist.M[i] > s.Hist.M[i-1]+1e-12 {
			t.Fatalf("magnetization increased under heating at step %d", i)
		}
	}
	if s.M >= s.Hist.M[0] {
		t.Error("magnetization should have dropped under sustained heating")
	}
}

func TestStepInvalidInput(t *testing.T) {
	s, err := NewSample(Nickel(), 300, 300, 0)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	if err := s.Step(0, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero dt, got %v", err)
	}
	if err := s.Step(-1e-16, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative dt, got %v", err)
	}
	if err := s.Step(1e-16, -1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative power, got %v", err)
	}
	if s.Hist.Len() != 1 {
		t.Errorf("failed steps must not grow the history, got %d entries", s.Hist.Len())
	}
}

func TestHistoryIsFinite(t *testing.T) {
	s, err := NewSample(Nickel(), 1000, 300, 0)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	// a one-second step against femtosecond dynamics: guaranteed blow-up
	for i := 0; i < 50; i++ {
		if err := s.Step(1, 0); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	if s.Hist.IsFinite() {
		t.Error("expected non-finite history after wildly unstable stepping")
	}
	if s.Hist.Len() != 51 {
		t.Errorf("blow-up must still record snapshots, got %d entries", s.Hist.Len())
	}
}

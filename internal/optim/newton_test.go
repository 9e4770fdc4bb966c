package optim

import (
	"errors"
	"math"
	"testing"
)

func TestFindRootQuadratic(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }

	root, err := FindRoot(f, 1.0, DefaultRootOptions())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if math.Abs(root-math.Sqrt2) > 1e-9 {
		t.Errorf("expected sqrt(2), got %.12f", root)
	}
}

func TestFindRootCustomBracket(t *testing.T) {
	opt := RootOptions{Tolerance: 1e-12, MaxIter: 50, BracketLo: 0.1, BracketHi: 3}

	root, err := FindRoot(math.Cos, 1.0, opt)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if math.Abs(root-math.Pi/2) > 1e-9 {
		t.Errorf("expected pi/2, got %.12f", root)
	}
}

func TestFindRootNoRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }

	_, err := FindRoot(f, 1.0, DefaultRootOptions())
	if err == nil {
		t.Fatal("expected error for function with no root")
	}
	if !errors.Is(err, ErrNoConvergence) {
		t.Errorf("expected ErrNoConvergence, got %v", err)
	}
}

func TestFindRootDeterministic(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 1 }

	a, err := FindRoot(f, 1.0, DefaultRootOptions())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	b, err := FindRoot(f, 1.0, DefaultRootOptions())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if a != b {
		t.Errorf("solver not deterministic: %.17g vs %.17g", a, b)
	}
}

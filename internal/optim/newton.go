package optim

import (
	"errors"
	"math"
)

// ErrNoConvergence indicates the root solve exhausted its iteration
// budget without meeting the residual tolerance.
var ErrNoConvergence = errors.New("optim: root solve did not converge")

type RootOptions struct {
	Tolerance float64 // residual magnitude accepted as a root
	MaxIter   int
	BracketLo float64 // bisection fallback interval
	BracketHi float64
}

func DefaultRootOptions() RootOptions {
	return RootOptions{
		Tolerance: 1e-10,
		MaxIter:   100,
		BracketLo: 1e-9,
		BracketHi: 1.5,
	}
}

// FindRoot locates a zero of f near guess. It runs damped Newton
// iteration with a central-difference derivative and falls back to
// bisection on [BracketLo, BracketHi] when the iteration leaves the
// bracket, produces a non-finite value, or the derivative vanishes.
func FindRoot(f func(float64) float64, guess float64, opt RootOptions) (float64, error) {
	if opt.Tolerance <= 0 || opt.MaxIter <= 0 {
		opt = DefaultRootOptions()
	}

	x := guess
	for i := 0; i < opt.MaxIter; i++ {
		fx := f(x)
		if math.Abs(fx) < opt.Tolerance {
			return x, nil
		}

		h := 1e-7 * math.Max(math.Abs(x), 1.0)
		df := (f(x+h) - f(x-h)) / (2 * h)
		if df == 0 || math.IsNaN(df) || math.IsInf(df, 0) {
			break
		}

		next := x - fx/df
		if math.IsNaN(next) || next <= opt.BracketLo || next > opt.BracketHi {
			break
		}
		x = next
	}

	return bisect(f, opt)
}

func bisect(f func(float64) float64, opt RootOptions) (float64, error) {
	lo, hi := opt.BracketLo, opt.BracketHi
	flo, fhi := f(lo), f(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || flo*fhi > 0 {
		return 0, ErrNoConvergence
	}

	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		fmid := f(mid)
		if math.Abs(fmid) < opt.Tolerance || hi-lo < 1e-15 {
			return mid, nil
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}

	return 0, ErrNoConvergence
}

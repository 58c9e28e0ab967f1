package core

import (
	"math"
	"testing"
)

const tol = 1e-12

func complexNear(a, b Complex) bool {
	return math.Abs(a.Re-b.Re) < tol && math.Abs(a.Im-b.Im) < tol
}

func TestAdd(t *testing.T) {
	got := NewComplex(1, 2).Add(NewComplex(3, -4))
	if want := NewComplex(4, -2); !complexNear(got, want) {
		t.Errorf("Add = %+v, want %+v", got, want)
	}
}

func TestMul(t *testing.T) {
	// (2+3i)(1-i) = 2 - 2i + 3i - 3i² = 5 + i
	got := NewComplex(2, 3).Mul(NewComplex(1, -1))
	if want := NewComplex(5, 1); !complexNear(got, want) {
		t.Errorf("Mul = %+v, want %+v", got, want)
	}
}

func TestDiv(t *testing.T) {
	// (5+i)/(1-i) should recover 2+3i.
	got := NewComplex(5, 1).Div(NewComplex(1, -1))
	if want := NewComplex(2, 3); !complexNear(got, want) {
		t.Errorf("Div = %+v, want %+v", got, want)
	}
}

// Dividing by an exact zero must return the complex zero, never NaN/Inf.
// The integrator depends on this at wave-function nodes.
func TestDiv_ZeroDenominatorPolicy(t *testing.T) {
	got := NewComplex(1, 0).Div(Complex{})
	if got != (Complex{}) {
		t.Fatalf("Div by zero = %+v, want (0, 0)", got)
	}
	if math.IsNaN(got.Re) || math.IsNaN(got.Im) {
		t.Fatalf("Div by zero produced NaN: %+v", got)
	}
}

func TestAbs2(t *testing.T) {
	if got := NewComplex(3, 4).Abs2(); got != 25 {
		t.Errorf("Abs2 = %v, want 25", got)
	}
	if got := (Complex{}).Abs2(); got != 0 {
		t.Errorf("Abs2 of zero = %v, want 0", got)
	}
}

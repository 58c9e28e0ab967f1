package core

// Complex is an immutable complex value represented as a (re, im) pair.
// The zero value is the complex zero.
//
// We deliberately use our own small type instead of the built-in complex128:
// the guiding-equation evaluator needs a division with a defined result at a
// zero denominator (see Div), and complex128 division yields NaN/Inf there.
type Complex struct {
	Re, Im float64
}

// NewComplex constructs a complex value from its components.
func NewComplex(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Add returns the componentwise sum c + other.
func (c Complex) Add(other Complex) Complex {
	return Complex{Re: c.Re + other.Re, Im: c.Im + other.Im}
}

// Mul returns the complex product c * other.
func (c Complex) Mul(other Complex) Complex {
	return Complex{
		Re: c.Re*other.Re - c.Im*other.Im,
		Im: c.Re*other.Im + c.Im*other.Re,
	}
}

// Abs2 returns the squared magnitude |c|².
func (c Complex) Abs2() float64 {
	return c.Re*c.Re + c.Im*c.Im
}

// Div returns the complex quotient c / other, computed as
// (c * conj(other)) / |other|².
//
// Zero-denominator policy: when other is exactly (0, 0), Div returns the
// complex zero instead of NaN/Inf. Wave-function nodes make the guiding
// equation singular; clamping the quotient there keeps the integrator
// running at the cost of a locally inaccurate velocity. This is a documented
// engine policy, not a fallback — callers and tests rely on it.
func (c Complex) Div(other Complex) Complex {
	denom := other.Abs2()
	if denom == 0 {
		return Complex{}
	}
	return Complex{
		Re: (c.Re*other.Re + c.Im*other.Im) / denom,
		Im: (c.Im*other.Re - c.Re*other.Im) / denom,
	}
}

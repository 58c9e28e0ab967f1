package core

import "github.com/signalsfoundry/pilotwave-simulator/model"

// GuidingField is the superposed two-slit wave function: the pointwise
// complex sum of two Gaussian packets. It evaluates the total value, the
// total gradient, and the guiding-equation velocity at a point. Slit
// parameters are static for the lifetime of the field.
type GuidingField struct {
	Slit1 model.PacketParams
	Slit2 model.PacketParams
}

// NewGuidingField constructs a field from the two slit packets.
func NewGuidingField(slit1, slit2 model.PacketParams) *GuidingField {
	return &GuidingField{Slit1: slit1, Slit2: slit2}
}

// Value returns the superposed wave-function value Ψ₁(x,y) + Ψ₂(x,y).
func (f *GuidingField) Value(x, y float64) Complex {
	return PacketValue(x, y, f.Slit1).Add(PacketValue(x, y, f.Slit2))
}

// Gradient returns the superposed gradient, summed per axis.
func (f *GuidingField) Gradient(x, y float64) (gradX, gradY Complex) {
	g1x, g1y := PacketGradient(x, y, f.Slit1)
	g2x, g2y := PacketGradient(x, y, f.Slit2)
	return g1x.Add(g2x), g1y.Add(g2y)
}

// Velocity evaluates the guiding equation v = (ħ/m)·Im(∇Ψ/Ψ) per axis at
// (x, y). clamped reports whether the zero-denominator policy fired: at an
// exact node Ψ = (0,0) the quotient is clamped to zero and the velocity for
// both axes evaluates to 0 rather than failing (see Complex.Div).
func (f *GuidingField) Velocity(x, y float64) (vx, vy float64, clamped bool) {
	value := f.Value(x, y)
	gradX, gradY := f.Gradient(x, y)
	return velocityFromField(value, gradX, gradY)
}

// velocityFromField applies the guiding equation to an already evaluated
// field value and gradient.
func velocityFromField(value, gradX, gradY Complex) (vx, vy float64, clamped bool) {
	clamped = value.Abs2() == 0
	vx = (HBar / ParticleMass) * gradX.Div(value).Im
	vy = (HBar / ParticleMass) * gradY.Div(value).Im
	return vx, vy, clamped
}

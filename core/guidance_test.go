package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/pilotwave-simulator/model"
)

// Two slits mirror-symmetric about the x-axis (opposite centerY, opposite
// MomentumY of equal magnitude): on the symmetry axis the y-components of
// the two packet gradients cancel, so the y-velocity must vanish. This
// exercises superposition and the gradient algebra jointly.
func TestVelocity_SymmetricSlitsOnAxis(t *testing.T) {
	field := NewGuidingField(
		model.PacketParams{CenterX: 0, CenterY: 1.5, Width: 1, MomentumX: 0, MomentumY: 5},
		model.PacketParams{CenterX: 0, CenterY: -1.5, Width: 1, MomentumX: 0, MomentumY: -5},
	)

	_, vy, clamped := field.Velocity(-0.5, 0)
	if clamped {
		t.Fatalf("unexpected node clamp at a symmetric off-node point")
	}
	if math.Abs(vy) > 1e-9 {
		t.Errorf("y-velocity on symmetry axis = %v, want ~0", vy)
	}
}

// A single free packet guides its particle at exactly p/m: with two
// coincident identical slits the superposition doubles Ψ and ∇Ψ alike, so
// the velocity is unchanged.
func TestVelocity_CoincidentSlitsPlaneWaveLimit(t *testing.T) {
	p := model.PacketParams{CenterX: 0, CenterY: 0, Width: 1, MomentumX: 2, MomentumY: -1}
	field := NewGuidingField(p, p)

	// At the common centre the envelope gradient vanishes, leaving only the
	// phase contribution p/m per axis.
	vx, vy, clamped := field.Velocity(0, 0)
	if clamped {
		t.Fatalf("unexpected node clamp at packet center")
	}
	if math.Abs(vx-2) > 1e-12 {
		t.Errorf("vx = %v, want 2 (momentum/mass)", vx)
	}
	if math.Abs(vy-(-1)) > 1e-12 {
		t.Errorf("vy = %v, want -1 (momentum/mass)", vy)
	}
}

// At an exact node the guiding equation is singular; the engine's policy is
// a zero velocity for both axes, flagged as clamped.
func TestVelocityFromField_NodeClamp(t *testing.T) {
	vx, vy, clamped := velocityFromField(Complex{}, NewComplex(0.3, -0.2), NewComplex(-1, 4))
	if !clamped {
		t.Fatalf("expected clamp at exact zero field value")
	}
	if vx != 0 || vy != 0 {
		t.Errorf("clamped velocity = (%v, %v), want (0, 0)", vx, vy)
	}
}

func TestGradient_IsSumOfPacketGradients(t *testing.T) {
	slit1 := model.PacketParams{CenterX: 0, CenterY: 1.5, Width: 1, MomentumY: 5}
	slit2 := model.PacketParams{CenterX: 0, CenterY: -1.5, Width: 1, MomentumY: 5}
	field := NewGuidingField(slit1, slit2)

	x, y := 0.4, -0.7
	gx, gy := field.Gradient(x, y)

	g1x, g1y := PacketGradient(x, y, slit1)
	g2x, g2y := PacketGradient(x, y, slit2)

	if want := g1x.Add(g2x); !complexNear(gx, want) {
		t.Errorf("total ∂Ψ/∂x = %+v, want %+v", gx, want)
	}
	if want := g1y.Add(g2y); !complexNear(gy, want) {
		t.Errorf("total ∂Ψ/∂y = %+v, want %+v", gy, want)
	}
}

package core

import (
	"math"

	"github.com/signalsfoundry/pilotwave-simulator/model"
)

// PacketValue evaluates a single Gaussian wave packet at (x, y):
//
//	Ψ(x,y) = exp(−(Δx² + Δy²) / (4σ²)) · exp(i (px·Δx + py·Δy) / ħ)
//
// with Δx = x − cx, Δy = y − cy. The magnitude is a real Gaussian envelope
// and the phase factor has unit magnitude. Packet width must be validated
// (> 0) upstream; the function is pure and total over finite inputs.
func PacketValue(x, y float64, p model.PacketParams) Complex {
	dx := x - p.CenterX
	dy := y - p.CenterY

	magnitude := math.Exp(-(dx*dx + dy*dy) / (4 * p.Width * p.Width))
	phaseAngle := (p.MomentumX*dx + p.MomentumY*dy) / HBar

	phase := Complex{Re: math.Cos(phaseAngle), Im: math.Sin(phaseAngle)}
	return Complex{Re: magnitude}.Mul(phase)
}

// PacketGradient returns the analytic spatial gradient [∂Ψ/∂x, ∂Ψ/∂y] of a
// single packet at (x, y). By the chain rule each partial is the packet
// value scaled by a complex factor:
//
//	∂Ψ/∂x = Ψ · (−Δx/(2σ²) + i·px/ħ)
//	∂Ψ/∂y = Ψ · (−Δy/(2σ²) + i·py/ħ)
//
// Analytic rather than finite-difference, so the guiding equation sees an
// exact phase gradient.
func PacketGradient(x, y float64, p model.PacketParams) (gradX, gradY Complex) {
	value := PacketValue(x, y, p)

	dx := x - p.CenterX
	dy := y - p.CenterY
	twoSigmaSq := 2 * p.Width * p.Width

	gradX = value.Mul(Complex{Re: -dx / twoSigmaSq, Im: p.MomentumX / HBar})
	gradY = value.Mul(Complex{Re: -dy / twoSigmaSq, Im: p.MomentumY / HBar})
	return gradX, gradY
}

package core

// Natural-unit convention used throughout the engine. These are true
// process-wide physical constants, not configuration.
const (
	// HBar is the reduced Planck constant.
	HBar = 1.0
	// ParticleMass is the mass of the guided particle.
	ParticleMass = 1.0
)

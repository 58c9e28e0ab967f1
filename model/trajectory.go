package model

// Sample is one trajectory entry: the particle's position at simulation
// time T.
type Sample struct {
	T float64 `json:"t" yaml:"t"`
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Trajectory is the ordered, append-only sequence of samples produced by one
// simulation run. The first entry is always the initial state at t = 0 and
// each later entry is exactly one time step after the previous, so a run of
// N steps yields N+1 samples. It is the sole externally visible artifact of
// a run; consumers should treat it as immutable.
type Trajectory []Sample

// First returns the initial sample. It panics on an empty trajectory, which
// the engine never produces.
func (tr Trajectory) First() Sample { return tr[0] }

// Last returns the final sample. It panics on an empty trajectory, which the
// engine never produces.
func (tr Trajectory) Last() Sample { return tr[len(tr)-1] }

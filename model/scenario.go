package model

// Position is a point in the 2D simulation plane (natural units).
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Scenario is the immutable input bundle for one simulation run: where the
// particle starts, the two slit packets forming the guiding wave, and the
// Euler stepping parameters. Validated once before a run starts; never
// mutated afterwards.
type Scenario struct {
	Name string `json:"name" yaml:"name"`

	Initial Position     `json:"initial_position" yaml:"initial_position"`
	Slit1   PacketParams `json:"slit1" yaml:"slit1"`
	Slit2   PacketParams `json:"slit2" yaml:"slit2"`

	DT    float64 `json:"dt" yaml:"dt"`       // must be > 0
	Steps int     `json:"steps" yaml:"steps"` // must be >= 0
}

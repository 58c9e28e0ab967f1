package model

// PacketParams is the static configuration of a single Gaussian wave packet:
// a Gaussian magnitude envelope centred on (CenterX, CenterY) with spatial
// width Width, modulated by a plane-wave phase with momentum
// (MomentumX, MomentumY). Immutable after creation; one record per slit.
type PacketParams struct {
	CenterX   float64 `json:"center_x" yaml:"center_x"`
	CenterY   float64 `json:"center_y" yaml:"center_y"`
	Width     float64 `json:"width" yaml:"width"` // must be > 0
	MomentumX float64 `json:"momentum_x" yaml:"momentum_x"`
	MomentumY float64 `json:"momentum_y" yaml:"momentum_y"`
}

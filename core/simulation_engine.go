package core

import "github.com/signalsfoundry/pilotwave-simulator/model"

// RunStats summarises what the integration loop did: how many Euler steps
// ran and how many of them hit the zero-denominator clamp at a wave-function
// node. Exposed so the clamp policy is observable instead of silent.
type RunStats struct {
	Steps      int
	NodeClamps int
}

// SimulationEngine integrates one particle's trajectory under the guiding
// equation using explicit forward Euler steps. Each engine owns exactly one
// run: its particle state and trajectory buffer are private to it, so
// independent runs are safe to execute in parallel (parallelise across runs,
// never inside the loop — each step depends on the previous position).
type SimulationEngine struct {
	scenario model.Scenario
	field    *GuidingField

	stats         RunStats
	stepListeners []func(step int, s model.Sample)
}

// NewSimulationEngine validates the scenario and prepares an engine for it.
// Validation happens exactly once, here; the hot loop performs none.
func NewSimulationEngine(sc model.Scenario) (*SimulationEngine, error) {
	if err := ValidateScenario(sc); err != nil {
		return nil, err
	}
	return &SimulationEngine{
		scenario: sc,
		field:    NewGuidingField(sc.Slit1, sc.Slit2),
	}, nil
}

// RegisterStepListener adds a callback invoked after every Euler step with
// the step index (1-based) and the freshly appended sample. Listeners run on
// the integration goroutine; they must not block.
func (se *SimulationEngine) RegisterStepListener(fn func(step int, s model.Sample)) {
	se.stepListeners = append(se.stepListeners, fn)
}

// Run executes exactly Steps iterations and returns the completed
// trajectory of Steps+1 samples, the first being the initial state at t = 0.
// The loop has no branches or early exits: field values never abort it, and
// near-node velocities are clamped to zero by the guiding field.
func (se *SimulationEngine) Run() model.Trajectory {
	sc := se.scenario

	trajectory := make(model.Trajectory, 0, sc.Steps+1)
	trajectory = append(trajectory, model.Sample{T: 0, X: sc.Initial.X, Y: sc.Initial.Y})

	t, x, y := 0.0, sc.Initial.X, sc.Initial.Y
	se.stats = RunStats{}

	for step := 1; step <= sc.Steps; step++ {
		vx, vy, clamped := se.field.Velocity(x, y)
		if clamped {
			se.stats.NodeClamps++
		}

		x += vx * sc.DT
		y += vy * sc.DT
		t += sc.DT
		se.stats.Steps++

		sample := model.Sample{T: t, X: x, Y: y}
		trajectory = append(trajectory, sample)

		for _, fn := range se.stepListeners {
			fn(step, sample)
		}
	}

	return trajectory
}

// Stats returns the counters from the most recent Run.
func (se *SimulationEngine) Stats() RunStats { return se.stats }

// RunSimulation is the one-shot entry point: validate the scenario, run it,
// return the trajectory. Convenience wrapper over NewSimulationEngine + Run.
func RunSimulation(sc model.Scenario) (model.Trajectory, error) {
	engine, err := NewSimulationEngine(sc)
	if err != nil {
		return nil, err
	}
	return engine.Run(), nil
}

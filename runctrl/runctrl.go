package runctrl

import (
	"context"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/signalsfoundry/pilotwave-simulator/core"
	"github.com/signalsfoundry/pilotwave-simulator/internal/logging"
	"github.com/signalsfoundry/pilotwave-simulator/internal/observability"
	"github.com/signalsfoundry/pilotwave-simulator/model"
	"github.com/signalsfoundry/pilotwave-simulator/runs"
)

// Option configures a RunController.
type Option func(*RunController)

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(rc *RunController) { rc.log = l }
}

// WithCollector attaches a metrics collector.
func WithCollector(c *observability.SimCollector) Option {
	return func(rc *RunController) { rc.collector = c }
}

// RunController executes batches of independent simulation runs across a
// bounded worker pool. Parallelism is per whole run: a single run is a
// strict sequential data dependency (each Euler step needs the previous
// position), so there is nothing to parallelise inside it, while separate
// runs share no mutable state at all. Completed runs land in the registry,
// which notifies its subscribers.
type RunController struct {
	registry *runs.Registry
	workers  int

	log       logging.Logger
	collector *observability.SimCollector
}

// NewRunController constructs a controller draining work through the given
// registry. workers <= 0 means one worker per CPU.
func NewRunController(registry *runs.Registry, workers int, opts ...Option) *RunController {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	rc := &RunController{
		registry: registry,
		workers:  workers,
		log:      logging.Noop(),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Start validates every scenario up front — an invalid scenario fails the
// whole batch before any run executes — then launches the worker pool. The
// returned channel is closed once all runs have completed.
func (rc *RunController) Start(ctx context.Context, scenarios []model.Scenario) (<-chan struct{}, error) {
	for _, sc := range scenarios {
		if err := core.ValidateScenario(sc); err != nil {
			return nil, err
		}
	}

	pending := make([]*runs.Record, 0, len(scenarios))
	for _, sc := range scenarios {
		pending = append(pending, rc.registry.Add(sc))
	}

	work := make(chan *runs.Record)
	var wg sync.WaitGroup
	for w := 0; w < rc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range work {
				rc.runOne(ctx, rec)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, rec := range pending {
			work <- rec
		}
		close(work)
		wg.Wait()
	}()
	return done, nil
}

// RunOne executes a single scenario synchronously and returns its completed
// record. Convenience path for callers that don't need a batch.
func (rc *RunController) RunOne(ctx context.Context, sc model.Scenario) (*runs.Record, error) {
	if err := core.ValidateScenario(sc); err != nil {
		return nil, err
	}
	rec := rc.registry.Add(sc)
	rc.runOne(ctx, rec)
	return rec, nil
}

func (rc *RunController) runOne(ctx context.Context, rec *runs.Record) {
	ctx = logging.ContextWithRunID(ctx, rec.ID)
	log := rc.log.With(
		logging.String("run_id", rec.ID),
		logging.String("scenario", rec.Scenario.Name),
	)

	ctx, span := observability.StartRunSpan(ctx, rec.Scenario.Name, rec.ID, rec.Scenario.Steps, rec.Scenario.DT)
	defer span.End()

	rc.collector.RunStarted()
	started := time.Now()

	// Scenario was validated before the batch started; a failure here is a
	// programming error, not a runtime condition.
	engine, err := core.NewSimulationEngine(rec.Scenario)
	if err != nil {
		log.Error(ctx, "engine rejected pre-validated scenario", logging.String("error", err.Error()))
		return
	}

	trajectory := engine.Run()
	stats := engine.Stats()
	elapsed := time.Since(started)

	rc.collector.RunCompleted(stats.Steps, stats.NodeClamps, elapsed)

	if err := rc.registry.Complete(rec.ID, trajectory, runs.RunStats{
		Steps:      stats.Steps,
		NodeClamps: stats.NodeClamps,
	}); err != nil {
		log.Error(ctx, "failed to record completed run", logging.String("error", err.Error()))
		return
	}

	log.Info(ctx, "run completed",
		logging.Int("steps", stats.Steps),
		logging.Int("node_clamps", stats.NodeClamps),
		logging.Float64("final_x", trajectory.Last().X),
		logging.Float64("final_y", trajectory.Last().Y),
	)
}

// SweepInitial builds n scenarios whose initial positions are spaced evenly
// along the segment from → to (endpoints inclusive), all other parameters
// copied from base. The runs are independent and suitable for Start.
func SweepInitial(base model.Scenario, from, to model.Position, n int) []model.Scenario {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		sc := base
		sc.Initial = from
		return []model.Scenario{sc}
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	floats.Span(xs, from.X, to.X)
	floats.Span(ys, from.Y, to.Y)

	scenarios := make([]model.Scenario, n)
	for i := range scenarios {
		sc := base
		sc.Initial = model.Position{X: xs[i], Y: ys[i]}
		scenarios[i] = sc
	}
	return scenarios
}

package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimCollector bundles Prometheus metrics for the simulation engine and
// provides a ready-to-serve /metrics handler. The node-clamp counter exists
// so the zero-denominator policy at wave-function nodes is visible in
// operation, not just in tests.
type SimCollector struct {
	gatherer prometheus.Gatherer

	RunsStarted     prometheus.Counter
	RunsCompleted   prometheus.Counter
	StepsTotal      prometheus.Counter
	NodeClampsTotal prometheus.Counter
	RunDuration     prometheus.Histogram
	ActiveRuns      prometheus.Gauge
}

// NewSimCollector registers simulation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	started, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_runs_started_total",
		Help: "Total number of simulation runs started.",
	}), "sim_runs_started_total")
	if err != nil {
		return nil, err
	}
	completed, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_runs_completed_total",
		Help: "Total number of simulation runs completed.",
	}), "sim_runs_completed_total")
	if err != nil {
		return nil, err
	}
	steps, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_steps_total",
		Help: "Total number of Euler integration steps executed across all runs.",
	}), "sim_steps_total")
	if err != nil {
		return nil, err
	}
	clamps, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_node_clamps_total",
		Help: "Steps where the guiding-equation velocity was clamped to zero at a wave-function node.",
	}), "sim_node_clamps_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_run_duration_seconds",
		Help:    "Wall-clock duration of one simulation run in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
	duration, err = registerHistogram(reg, duration, "sim_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	active, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_active_runs",
		Help: "Number of simulation runs currently executing.",
	}), "sim_active_runs")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:        gatherer,
		RunsStarted:     started,
		RunsCompleted:   completed,
		StepsTotal:      steps,
		NodeClampsTotal: clamps,
		RunDuration:     duration,
		ActiveRuns:      active,
	}, nil
}

// RunStarted records the start of one run.
func (c *SimCollector) RunStarted() {
	if c == nil {
		return
	}
	if c.RunsStarted != nil {
		c.RunsStarted.Inc()
	}
	if c.ActiveRuns != nil {
		c.ActiveRuns.Inc()
	}
}

// RunCompleted records counters and wall-clock duration for one finished run.
func (c *SimCollector) RunCompleted(steps, nodeClamps int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.RunsCompleted != nil {
		c.RunsCompleted.Inc()
	}
	if c.StepsTotal != nil {
		c.StepsTotal.Add(float64(steps))
	}
	if c.NodeClampsTotal != nil {
		c.NodeClampsTotal.Add(float64(nodeClamps))
	}
	if c.RunDuration != nil {
		c.RunDuration.Observe(elapsed.Seconds())
	}
	if c.ActiveRuns != nil {
		c.ActiveRuns.Dec()
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

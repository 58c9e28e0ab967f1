package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/signalsfoundry/pilotwave-simulator/core"
	"github.com/signalsfoundry/pilotwave-simulator/internal/logging"
	"github.com/signalsfoundry/pilotwave-simulator/internal/observability"
	"github.com/signalsfoundry/pilotwave-simulator/model"
	"github.com/signalsfoundry/pilotwave-simulator/runctrl"
	"github.com/signalsfoundry/pilotwave-simulator/runs"
)

func main() {
	scenarioPath := flag.String("scenario", "configs/two_slit.json", "path to a scenario file (JSON or YAML)")
	steps := flag.Int("steps", 0, "override the scenario's step count (0 keeps the file value)")
	dt := flag.Float64("dt", 0, "override the scenario's time step (0 keeps the file value)")
	sweep := flag.Int("sweep", 0, "run a sweep of N initial positions instead of a single run")
	sweepFrom := flag.String("sweep-from", "", "sweep start position as \"x,y\" (defaults to the scenario's initial position)")
	sweepTo := flag.String("sweep-to", "", "sweep end position as \"x,y\"")
	workers := flag.Int("workers", 0, "worker pool size for sweeps (0 = one per CPU)")
	output := flag.String("output", "json", "output format: json (full trajectory) or summary")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (empty = disabled)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewSimCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *metricsAddr != "" {
		serveMetrics(*metricsAddr, collector, log)
	}

	base, err := core.LoadScenarioFile(*scenarioPath)
	if err != nil {
		log.Error(ctx, "failed to load scenario", logging.String("path", *scenarioPath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *steps > 0 {
		base.Steps = *steps
	}
	if *dt > 0 {
		base.DT = *dt
	}

	registry := runs.NewRegistry()
	controller := runctrl.NewRunController(registry, *workers,
		runctrl.WithLogger(log),
		runctrl.WithCollector(collector),
	)

	if *sweep > 0 {
		runSweep(ctx, log, controller, registry, *base, *sweep, *sweepFrom, *sweepTo)
		return
	}

	rec, err := controller.RunOne(ctx, *base)
	if err != nil {
		log.Error(ctx, "run failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	switch *output {
	case "summary":
		printSummary(rec)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec.Trajectory); err != nil {
			log.Error(ctx, "failed to encode trajectory", logging.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

func runSweep(ctx context.Context, log logging.Logger, controller *runctrl.RunController, registry *runs.Registry, base model.Scenario, n int, fromSpec, toSpec string) {
	from := base.Initial
	if fromSpec != "" {
		from = mustParsePosition(log, "sweep-from", fromSpec)
	}
	to := from
	if toSpec != "" {
		to = mustParsePosition(log, "sweep-to", toSpec)
	}

	scenarios := runctrl.SweepInitial(base, from, to, n)
	done, err := controller.Start(ctx, scenarios)
	if err != nil {
		log.Error(ctx, "sweep rejected", logging.String("error", err.Error()))
		os.Exit(1)
	}
	<-done

	for _, rec := range registry.List() {
		printSummary(rec)
	}
}

// printSummary emits one line per run: where the particle started, where it
// ended, and the bounding box the trajectory explored.
func printSummary(rec *runs.Record) {
	xs := make([]float64, len(rec.Trajectory))
	ys := make([]float64, len(rec.Trajectory))
	for i, s := range rec.Trajectory {
		xs[i] = s.X
		ys[i] = s.Y
	}

	first, last := rec.Trajectory.First(), rec.Trajectory.Last()
	fmt.Printf("run %s: samples=%d start=(%.3f, %.3f) end=(%.3f, %.3f) bounds=x[%.3f, %.3f] y[%.3f, %.3f] node_clamps=%d\n",
		rec.ID, len(rec.Trajectory),
		first.X, first.Y, last.X, last.Y,
		floats.Min(xs), floats.Max(xs),
		floats.Min(ys), floats.Max(ys),
		rec.Stats.NodeClamps,
	)
}

func mustParsePosition(log logging.Logger, name, raw string) model.Position {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		log.Error(context.Background(), "invalid position flag", logging.String("flag", name), logging.String("value", raw))
		os.Exit(1)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		log.Error(context.Background(), "invalid position flag", logging.String("flag", name), logging.String("value", raw))
		os.Exit(1)
	}
	return model.Position{X: x, Y: y}
}

func serveMetrics(addr string, collector *observability.SimCollector, log logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
}

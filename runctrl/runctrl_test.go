package runctrl

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/signalsfoundry/pilotwave-simulator/core"
	"github.com/signalsfoundry/pilotwave-simulator/model"
	"github.com/signalsfoundry/pilotwave-simulator/runs"
)

func testScenario() model.Scenario {
	return model.Scenario{
		Name:    "runctrl-test",
		Initial: model.Position{X: -0.5, Y: -5},
		Slit1:   model.PacketParams{CenterY: 1.5, Width: 1, MomentumY: 5},
		Slit2:   model.PacketParams{CenterY: -1.5, Width: 1, MomentumY: 5},
		DT:      0.02,
		Steps:   20,
	}
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("batch did not complete in time")
	}
}

func TestStart_RunsAllScenarios(t *testing.T) {
	registry := runs.NewRegistry()
	rc := NewRunController(registry, 2)

	var mu sync.Mutex
	completed := 0
	registry.Subscribe(func(e runs.Event) {
		if e.Type == runs.EventRunCompleted {
			mu.Lock()
			completed++
			mu.Unlock()
		}
	})

	scenarios := []model.Scenario{testScenario(), testScenario(), testScenario()}
	done, err := rc.Start(context.Background(), scenarios)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, done)

	mu.Lock()
	defer mu.Unlock()
	if completed != 3 {
		t.Errorf("completion events = %d, want 3", completed)
	}

	for _, rec := range registry.List() {
		if rec.Status != runs.StatusCompleted {
			t.Errorf("run %s status = %v, want StatusCompleted", rec.ID, rec.Status)
		}
		if len(rec.Trajectory) != 21 {
			t.Errorf("run %s trajectory length = %d, want 21", rec.ID, len(rec.Trajectory))
		}
		if rec.Stats.Steps != 20 {
			t.Errorf("run %s stats.Steps = %d, want 20", rec.ID, rec.Stats.Steps)
		}
	}
}

// One invalid scenario must fail the whole batch before anything runs.
func TestStart_FailsFastOnInvalidScenario(t *testing.T) {
	registry := runs.NewRegistry()
	rc := NewRunController(registry, 2)

	bad := testScenario()
	bad.Slit1.Width = 0

	_, err := rc.Start(context.Background(), []model.Scenario{testScenario(), bad})
	if !errors.Is(err, core.ErrInvalidScenario) {
		t.Fatalf("err = %v, want ErrInvalidScenario", err)
	}
	if got := len(registry.List()); got != 0 {
		t.Errorf("registry holds %d runs after failed batch, want 0", got)
	}
}

func TestRunOne(t *testing.T) {
	registry := runs.NewRegistry()
	rc := NewRunController(registry, 1)

	rec, err := rc.RunOne(context.Background(), testScenario())
	if err != nil {
		t.Fatalf("RunOne: %v", err)
	}
	if rec.Status != runs.StatusCompleted {
		t.Errorf("status = %v, want StatusCompleted", rec.Status)
	}
	if rec.Trajectory.First() != (model.Sample{T: 0, X: -0.5, Y: -5}) {
		t.Errorf("first sample = %+v, want initial state", rec.Trajectory.First())
	}
}

func TestSweepInitial(t *testing.T) {
	base := testScenario()
	from := model.Position{X: -1, Y: -5}
	to := model.Position{X: 1, Y: -5}

	scenarios := SweepInitial(base, from, to, 5)
	if len(scenarios) != 5 {
		t.Fatalf("sweep size = %d, want 5", len(scenarios))
	}

	// Endpoints are inclusive, spacing even.
	if scenarios[0].Initial != from {
		t.Errorf("first initial = %+v, want %+v", scenarios[0].Initial, from)
	}
	if scenarios[4].Initial != to {
		t.Errorf("last initial = %+v, want %+v", scenarios[4].Initial, to)
	}
	if math.Abs(scenarios[2].Initial.X) > 1e-12 {
		t.Errorf("middle initial X = %v, want 0", scenarios[2].Initial.X)
	}

	// All stepping parameters are copied from the base.
	for i, sc := range scenarios {
		if sc.DT != base.DT || sc.Steps != base.Steps || sc.Slit1 != base.Slit1 || sc.Slit2 != base.Slit2 {
			t.Errorf("sweep scenario %d diverged from base: %+v", i, sc)
		}
	}
}

func TestSweepInitial_DegenerateSizes(t *testing.T) {
	base := testScenario()
	from := model.Position{X: 2, Y: 3}

	if got := SweepInitial(base, from, from, 0); got != nil {
		t.Errorf("sweep of 0 = %v, want nil", got)
	}

	one := SweepInitial(base, from, model.Position{X: 9, Y: 9}, 1)
	if len(one) != 1 || one[0].Initial != from {
		t.Errorf("sweep of 1 = %+v, want single scenario at from", one)
	}
}

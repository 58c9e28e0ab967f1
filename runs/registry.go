package runs

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/signalsfoundry/pilotwave-simulator/model"
)

// Status tracks where a run is in its lifecycle.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
)

// Record is one simulation run held by the registry: its scenario, and the
// trajectory once the run completes. The trajectory is nil until completion.
type Record struct {
	ID       string
	Scenario model.Scenario
	Status   Status

	Trajectory model.Trajectory
	Stats      RunStats
}

// RunStats mirrors the engine counters for a completed run.
type RunStats struct {
	Steps      int
	NodeClamps int
}

// EventType indicates what kind of change happened in the registry.
type EventType int

const (
	EventRunCompleted EventType = iota
)

// Event is emitted to subscribers when a run completes.
type Event struct {
	Type EventType
	Run  Record
}

// Registry is an in-memory, thread-safe collection point for simulation
// runs. Each run owns its own trajectory, so the registry only coordinates
// bookkeeping across otherwise independent runs (e.g. parameter sweeps); it
// is process-local and never persisted.
type Registry struct {
	mu sync.RWMutex

	records map[string]*Record
	order   []string

	subs []func(Event)
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*Record)}
}

// Add registers a pending run for the given scenario and returns its record.
// IDs are generated, so Add never collides.
func (r *Registry) Add(sc model.Scenario) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := &Record{
		ID:       uuid.NewString(),
		Scenario: sc,
		Status:   StatusPending,
	}
	r.records[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return rec
}

// Complete stores a finished run's trajectory and stats, marks it completed,
// and notifies subscribers.
func (r *Registry) Complete(id string, trajectory model.Trajectory, stats RunStats) error {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("run with ID %q not found", id)
	}
	rec.Trajectory = trajectory
	rec.Stats = stats
	rec.Status = StatusCompleted

	event := Event{
		Type: EventRunCompleted,
		Run:  *rec, // copy for safety
	}
	subs := append([]func(Event){}, r.subs...)
	r.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// Get returns the run with the given ID, or nil if not found.
func (r *Registry) Get(id string) *Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records[id]
}

// List returns a snapshot slice of all runs in registration order.
func (r *Registry) List() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*Record, 0, len(r.order))
	for _, id := range r.order {
		res = append(res, r.records[id])
	}
	return res
}

// Subscribe registers a callback for registry events. It returns an
// unsubscribe function.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
	idx := len(r.subs) - 1

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if idx < 0 || idx >= len(r.subs) {
			return
		}
		r.subs = append(r.subs[:idx], r.subs[idx+1:]...)
		idx = -1
	}
}

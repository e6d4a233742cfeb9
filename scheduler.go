package ecs

import (
	"fmt"
	"sync"

	"github.com/cogwheelgg/ecs/internal/diag"
)

// Scheduler runs every registered system once per Update call, honoring
// the ActionGraph's topological order across actions and running systems
// within the same action concurrently wherever their declared component
// accesses don't conflict.
//
// No third-party worker-pool/errgroup library shows up anywhere in the
// retrieval pack, so wave dispatch is plain goroutines, a sync.WaitGroup,
// and per-goroutine panic recovery — stdlib concurrency primitives, the
// same texture as the teacher's own storage code (see DESIGN.md).
type Scheduler struct {
	registry *SystemRegistry
	graph    *ActionGraph
	storage  Storage
	tracker  *ChangeTracker
}

func newScheduler(registry *SystemRegistry, graph *ActionGraph, sto Storage, tracker *ChangeTracker) *Scheduler {
	return &Scheduler{registry: registry, graph: graph, storage: sto, tracker: tracker}
}

// Update runs one full cycle: actions in topological order, systems within
// an action split into parallel waves by conflict, operation queue drained
// between waves, change tracker reset at the end of the cycle.
func (s *Scheduler) Update(app *App) error {
	order := s.graph.TopologicalOrder()
	for _, action := range order {
		systems := s.registry.ByAction(action)
		if len(systems) == 0 {
			continue
		}
		for _, wave := range waves(systems) {
			if err := s.runWave(app, wave); err != nil {
				return err
			}
			s.drainQueue()
		}
	}
	s.tracker.ResetCycle()
	return nil
}

// runWave executes every system in wave concurrently, waiting for all to
// finish and surfacing the first error or recovered panic encountered. A
// wave of exactly one system runs inline on the caller's goroutine without
// panic recovery.
func (s *Scheduler) runWave(app *App, wave []SystemDescriptor) error {
	if len(wave) == 1 {
		return s.runOne(app, wave[0])
	}
	var wg sync.WaitGroup
	errs := make([]error, len(wave))
	for i, desc := range wave {
		wg.Add(1)
		go func(i int, desc SystemDescriptor) {
			defer wg.Done()
			errs[i] = s.runOneRecovered(app, desc)
		}(i, desc)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) runOne(app *App, desc SystemDescriptor) error {
	defer s.tracker.CompleteFirstRun(desc.ID)
	if err := desc.Run(app); err != nil {
		Config.Logger().Log(diag.Error, "system %s returned error: %v", desc.ID, err)
		return err
	}
	return nil
}

func (s *Scheduler) runOneRecovered(app *App, desc SystemDescriptor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("system %s panicked: %v", desc.ID, r)
			Config.Logger().Log(diag.Error, "%v", err)
		}
	}()
	return s.runOne(app, desc)
}

func (s *Scheduler) drainQueue() {
	if s.storage.Locked() {
		return
	}
	if q, ok := s.storage.(*storage); ok {
		if err := q.operationQueue.ProcessAll(q); err != nil {
			Config.Logger().Log(diag.Warn, "error draining operation queue between waves: %v", err)
		}
	}
}

// waves greedily partitions systems into sequential groups such that no two
// systems in the same group conflict, preserving the order the registry
// listed them in for any given group. Each pass places every system that
// fits the current group (first fit, in list order); the number of groups
// is not guaranteed to be the smallest possible.
func waves(systems []SystemDescriptor) [][]SystemDescriptor {
	var result [][]SystemDescriptor
	remaining := append([]SystemDescriptor(nil), systems...)
	for len(remaining) > 0 {
		var wave []SystemDescriptor
		var next []SystemDescriptor
		for _, desc := range remaining {
			placed := false
			if !placed {
				conflictsWithWave := false
				for _, inWave := range wave {
					if conflicts(inWave, desc) {
						conflictsWithWave = true
						break
					}
				}
				if !conflictsWithWave {
					wave = append(wave, desc)
					placed = true
				}
			}
			if !placed {
				next = append(next, desc)
			}
		}
		result = append(result, wave)
		remaining = next
	}
	return result
}

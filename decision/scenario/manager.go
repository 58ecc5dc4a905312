// Package scenario manages named what-if variants over a baseline estimate.
// Scenarios live in an arena keyed by id with a single primary reference,
// which makes the "at most one primary" invariant structural rather than a
// flag scattered across list entries.
package scenario

import (
	"sync"

	"github.com/google/uuid"

	"sealcost/decision/estimation"
	"sealcost/pkg/api"
	"sealcost/pkg/errors"
)

// Sentinel errors surfaced to callers.
var (
	ErrNotFound    = errors.New(errors.ErrCodeScenarioNotFound, "scenario not found")
	ErrRunInFlight = errors.New(errors.ErrCodeRunInFlight, "scenario run already in flight")
)

// Manager owns the scenario arena for one estimator session. All exported
// methods are safe for concurrent use; each scenario's running status gates
// its own re-entrancy without blocking other scenarios.
type Manager struct {
	mu sync.Mutex

	engine   *estimation.Engine
	baseline api.ProjectInputs
	business api.BusinessSettings

	scenarios map[string]*api.Scenario
	order     []string // insertion order, drives primary promotion
	primaryID string
}

// NewManager creates a manager over a baseline input set.
func NewManager(engine *estimation.Engine, baseline api.ProjectInputs, business api.BusinessSettings) *Manager {
	return &Manager{
		engine:    engine,
		baseline:  baseline,
		business:  business,
		scenarios: make(map[string]*api.Scenario),
	}
}

// SetBaseline replaces the baseline. In-flight runs keep the snapshot they
// took at run start; only later runs observe the new baseline.
func (m *Manager) SetBaseline(in api.ProjectInputs, bs api.BusinessSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseline = in
	m.business = bs
}

// Baseline returns the current baseline inputs.
func (m *Manager) Baseline() (api.ProjectInputs, api.BusinessSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.baseline, m.business
}

// Add creates a scenario in idle state with no computation. The first
// scenario of a session becomes primary automatically.
func (m *Manager) Add(name, description string, overrides api.ScenarioOverrides) api.Scenario {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &api.Scenario{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Overrides:   overrides,
		Status:      api.StatusIdle,
	}
	m.scenarios[s.ID] = s
	m.order = append(m.order, s.ID)
	if len(m.order) == 1 {
		m.primaryID = s.ID
	}
	return m.snapshot(s)
}

// Update shallow-merges override patches and metadata. Updating never
// recomputes; callers run explicitly so edit latency stays decoupled from
// computation cost.
func (m *Manager) Update(id string, name, description *string, overrides *api.ScenarioOverrides) (api.Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.scenarios[id]
	if !ok {
		return api.Scenario{}, ErrNotFound
	}
	if name != nil {
		s.Name = *name
	}
	if description != nil {
		s.Description = *description
	}
	if overrides != nil {
		s.Overrides = s.Overrides.Merge(*overrides)
	}
	return m.snapshot(s), nil
}

// Run merges the scenario's overrides into the baseline, runs the pipeline,
// and stores the result. A failing run records the error and keeps any
// previous successful computation (stale but available). A scenario already
// running rejects the duplicate request without touching the in-flight run.
func (m *Manager) Run(id string) (api.Scenario, error) {
	m.mu.Lock()
	s, ok := m.scenarios[id]
	if !ok {
		m.mu.Unlock()
		return api.Scenario{}, ErrNotFound
	}
	if s.Status == api.StatusRunning {
		m.mu.Unlock()
		return api.Scenario{}, ErrRunInFlight
	}
	// Snapshot inputs at run start: a later Update must not affect this run.
	in, bs := s.Overrides.Apply(m.baseline, m.business)
	s.Status = api.StatusRunning
	m.mu.Unlock()

	comp, err := m.engine.Estimate(in, bs)

	m.mu.Lock()
	defer m.mu.Unlock()
	// The scenario may have been removed mid-run; its result is dropped.
	s, ok = m.scenarios[id]
	if !ok {
		return api.Scenario{}, ErrNotFound
	}
	if err != nil {
		s.Status = api.StatusError
		s.Error = err.Error()
	} else {
		s.Status = api.StatusDone
		s.Error = ""
		s.Computation = comp
	}
	return m.snapshot(s), nil
}

// Remove destroys a scenario. Removing the primary promotes the scenario
// with the lowest remaining insertion index; removing the last scenario
// leaves none primary.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.scenarios[id]; !ok {
		return ErrNotFound
	}
	delete(m.scenarios, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.primaryID == id {
		m.primaryID = ""
		if len(m.order) > 0 {
			m.primaryID = m.order[0]
		}
	}
	return nil
}

// SetPrimary marks one scenario primary, clearing all others.
func (m *Manager) SetPrimary(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.scenarios[id]; !ok {
		return ErrNotFound
	}
	m.primaryID = id
	return nil
}

// Get returns a copy of one scenario.
func (m *Manager) Get(id string) (api.Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.scenarios[id]
	if !ok {
		return api.Scenario{}, ErrNotFound
	}
	return m.snapshot(s), nil
}

// List returns copies of all scenarios in insertion order.
func (m *Manager) List() []api.Scenario {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]api.Scenario, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.snapshot(m.scenarios[id]))
	}
	return out
}

// snapshot copies a scenario for return, deriving IsPrimary from the
// arena's single primary reference. Callers must hold m.mu.
func (m *Manager) snapshot(s *api.Scenario) api.Scenario {
	out := *s
	out.IsPrimary = s.ID == m.primaryID
	return out
}

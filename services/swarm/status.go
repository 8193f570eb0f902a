package swarm

import (
	"sync"
	"time"

	"bookline/models"
)

// Observer is invoked synchronously on every CallStatus transition, so a UI
// layer can report live progress. The callback receives a copy and must not
// block for long.
type Observer func(models.CallStatus)

// run is the isolated bookkeeping of one swarm execution. Each Execute call
// gets its own run; nothing is shared across concurrent executions.
type run struct {
	mu       sync.Mutex
	statuses []models.CallStatus
	index    map[string]int
	observer Observer

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newRun(providers []models.Provider, observer Observer) *run {
	r := &run{
		statuses: make([]models.CallStatus, len(providers)),
		index:    make(map[string]int, len(providers)),
		observer: observer,
		stopCh:   make(chan struct{}),
	}
	for i, p := range providers {
		r.statuses[i] = models.CallStatus{
			ProviderID:   p.ID,
			ProviderName: p.Name,
			State:        models.CallPending,
		}
		r.index[p.ID] = i
	}
	return r
}

// transition is the only way a status changes. Terminal states are sticky;
// a late result can never overwrite a timeout or cancellation.
func (r *run) transition(providerID string, state models.CallState, result *models.CallResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[providerID]
	if !ok || r.statuses[i].State.Terminal() {
		return
	}
	now := time.Now()
	st := &r.statuses[i]
	st.State = state
	if state == models.CallCalling {
		st.StartedAt = &now
	} else {
		st.CompletedAt = &now
	}
	if result != nil {
		st.Result = result
	}
	if r.observer != nil {
		r.observer(*st)
	}
}

// interrupt signals in-flight calls to unwind. Idempotent.
func (r *run) interrupt() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// cancelPending marks every status still pending as cancelled.
func (r *run) cancelPending() {
	r.mu.Lock()
	pending := make([]string, 0)
	for _, st := range r.statuses {
		if st.State == models.CallPending {
			pending = append(pending, st.ProviderID)
		}
	}
	r.mu.Unlock()
	for _, id := range pending {
		r.transition(id, models.CallCancelled, nil)
	}
}

// snapshot returns a copy of all statuses in input order.
func (r *run) snapshot() []models.CallStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.CallStatus, len(r.statuses))
	copy(out, r.statuses)
	return out
}

// state returns the current state of one provider's call.
func (r *run) state(providerID string) models.CallState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statuses[r.index[providerID]].State
}

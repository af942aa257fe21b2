package orchestrator

import (
	"sort"

	"autotune/pkg/types"
)

// initStatus seeds the live snapshot with every model Pending, in input order.
func (o *Orchestrator) initStatus(models []types.SearchBounds) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runState = "running"
	o.models = make([]types.ModelStatus, len(models))
	for i, b := range models {
		o.models[i] = types.ModelStatus{Name: b.ModelName, State: string(StatePending)}
	}
}

func (o *Orchestrator) setRunState(s string) {
	o.mu.Lock()
	o.runState = s
	o.mu.Unlock()
}

func (o *Orchestrator) setState(idx int, s State, reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if idx < 0 || idx >= len(o.models) {
		return
	}
	o.models[idx].State = string(s)
	o.models[idx].Reason = reason
}

func (o *Orchestrator) setSweeping(idx, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if idx < 0 || idx >= len(o.models) {
		return
	}
	o.models[idx].State = string(StateSweeping)
	o.models[idx].ConfigsTotal = total
	o.models[idx].ConfigsDone = 0
}

func (o *Orchestrator) configDone(idx int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if idx < 0 || idx >= len(o.models) {
		return
	}
	o.models[idx].ConfigsDone++
}

// Ready reports whether a run has been initialized.
func (o *Orchestrator) Ready() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.runState != "idle"
}

// Models lists the names present in the run-level model repository, sorted.
// Empty when no repository is configured.
func (o *Orchestrator) Models() []string {
	if o.repo == nil {
		return nil
	}
	names := o.repo.Names()
	sort.Strings(names)
	return names
}

// Status returns a copy of the live run snapshot.
func (o *Orchestrator) Status() types.RunStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	models := make([]types.ModelStatus, len(o.models))
	copy(models, o.models)
	return types.RunStatus{State: o.runState, Models: models, CheckpointPath: o.path}
}

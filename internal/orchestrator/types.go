package orchestrator

import (
	"context"

	"autotune/internal/search"
	"autotune/internal/sweep"
	"autotune/pkg/types"
)

// State is the lifecycle state of one model's search.
type State string

const (
	StatePending    State = "pending"
	StateGenerating State = "generating"
	StateSweeping   State = "sweeping"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Strategy is the pluggable search algorithm: enumerate the candidate space,
// then measure one candidate across concurrency levels. The default is
// exhaustive enumerate-and-sweep; a pruning strategy can be substituted
// without touching the orchestrator.
type Strategy interface {
	Generate(bounds types.SearchBounds) ([]types.ServingConfig, error)
	Sweep(ctx context.Context, model string, cfg types.ServingConfig, levels []int, target sweep.LoadTester) []types.MeasurementRecord
}

// enumerateSweep is the default Strategy.
type enumerateSweep struct {
	driver *sweep.Driver
}

// NewEnumerateSweep wraps the generator and the given driver as a Strategy.
func NewEnumerateSweep(driver *sweep.Driver) Strategy {
	return enumerateSweep{driver: driver}
}

func (s enumerateSweep) Generate(bounds types.SearchBounds) ([]types.ServingConfig, error) {
	return search.Generate(bounds)
}

func (s enumerateSweep) Sweep(ctx context.Context, model string, cfg types.ServingConfig, levels []int, target sweep.LoadTester) []types.MeasurementRecord {
	return s.driver.Profile(ctx, model, cfg, levels, target)
}

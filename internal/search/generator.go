// Package search enumerates the candidate serving-config space for a model.
package search

import (
	"fmt"

	"autotune/pkg/types"
)

// Generate turns search bounds into the ordered candidate config sequence.
//
// The sequence starts with the baseline (single GPU instance, batching
// disabled), then walks instance counts 1..MaxInstanceCount with batching
// disabled, default-enabled, then preferred sizes 1..MaxPreferredBatchSize.
// Exact duplicates are skipped, so the baseline appears once. The ordering is
// part of the contract: checkpoint comparison and user-facing output depend
// on it being stable across runs.
//
// Length is bounded by MaxInstanceCount * (2 + MaxPreferredBatchSize).
func Generate(b types.SearchBounds) ([]types.ServingConfig, error) {
	if err := validate(b); err != nil {
		return nil, err
	}

	var out []types.ServingConfig
	seen := map[string]bool{}
	emit := func(c types.ServingConfig) {
		k := c.Key()
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, c)
	}

	// Baseline: what the model would run as without any search.
	emit(candidate(b, 1, nil))

	for n := 1; n <= b.MaxInstanceCount; n++ {
		emit(candidate(b, n, nil))
		emit(candidate(b, n, &types.DynamicBatching{}))
		for p := 1; p <= b.MaxPreferredBatchSize; p++ {
			emit(candidate(b, n, &types.DynamicBatching{PreferredBatchSizes: []int{p}}))
		}
	}
	return out, nil
}

func candidate(b types.SearchBounds, instances int, db *types.DynamicBatching) types.ServingConfig {
	return types.ServingConfig{
		MaxBatchSize:    b.MaxBatchSize,
		Instances:       []types.InstanceGroup{{Kind: types.KindGPU, Count: instances}},
		DynamicBatching: db,
	}
}

func validate(b types.SearchBounds) error {
	if b.ModelName == "" {
		return ErrInvalidBounds("model name is required")
	}
	if b.MaxBatchSize < 1 {
		return ErrInvalidBounds(fmt.Sprintf("max_batch_size must be >= 1, got %d", b.MaxBatchSize))
	}
	if b.MaxInstanceCount < 1 {
		return ErrInvalidBounds(fmt.Sprintf("max_instance_count must be >= 1, got %d", b.MaxInstanceCount))
	}
	if b.MaxPreferredBatchSize < 1 {
		return ErrInvalidBounds(fmt.Sprintf("max_preferred_batch_size must be >= 1, got %d", b.MaxPreferredBatchSize))
	}
	return nil
}

package search

import (
	"testing"

	"autotune/pkg/types"
)

func bounds(name string, mbs, inst, pref int) types.SearchBounds {
	return types.SearchBounds{
		ModelName:             name,
		MaxBatchSize:          mbs,
		MaxInstanceCount:      inst,
		MaxPreferredBatchSize: pref,
	}
}

func TestGenerateSmallBoundsExactSequence(t *testing.T) {
	configs, err := Generate(bounds("my_model1", 4, 1, 2))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []string{
		"mbs=4;inst=KIND_GPU:1;db=off",
		"mbs=4;inst=KIND_GPU:1;db=default",
		"mbs=4;inst=KIND_GPU:1;db=preferred:1",
		"mbs=4;inst=KIND_GPU:1;db=preferred:2",
	}
	if len(configs) != len(want) {
		t.Fatalf("expected %d configs got %d", len(want), len(configs))
	}
	for i, c := range configs {
		if c.Key() != want[i] {
			t.Fatalf("config %d: got %q want %q", i, c.Key(), want[i])
		}
		if len(c.Instances) != 1 || c.Instances[0].Kind != types.KindGPU || c.Instances[0].Count != 1 {
			t.Fatalf("config %d: unexpected instance group %+v", i, c.Instances)
		}
	}
	// Baseline must not repeat.
	if configs[0].DynamicBatching != nil {
		t.Fatalf("baseline should have batching disabled")
	}
}

func TestGenerateNoDuplicatesAndBounded(t *testing.T) {
	cases := []types.SearchBounds{
		bounds("m", 1, 1, 1),
		bounds("m", 8, 3, 4),
		bounds("m", 16, 5, 1),
		bounds("m", 2, 2, 8),
	}
	for _, b := range cases {
		configs, err := Generate(b)
		if err != nil {
			t.Fatalf("generate %+v: %v", b, err)
		}
		seen := map[string]bool{}
		for _, c := range configs {
			k := c.Key()
			if seen[k] {
				t.Fatalf("bounds %+v: duplicate config %q", b, k)
			}
			seen[k] = true
		}
		limit := b.MaxInstanceCount * (2 + b.MaxPreferredBatchSize)
		if len(configs) > limit {
			t.Fatalf("bounds %+v: %d configs exceeds limit %d", b, len(configs), limit)
		}
	}
}

func TestGenerateOrderingStable(t *testing.T) {
	b := bounds("m", 8, 2, 2)
	first, err := Generate(b)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := Generate(b)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("position %d differs across runs", i)
		}
	}
	// Instance count is the outer loop: all count=1 configs come before count=2.
	lastOne := -1
	firstTwo := len(first)
	for i, c := range first {
		switch c.Instances[0].Count {
		case 1:
			lastOne = i
		case 2:
			if i < firstTwo {
				firstTwo = i
			}
		}
	}
	if lastOne > firstTwo {
		t.Fatalf("instance counts interleaved: last count=1 at %d, first count=2 at %d", lastOne, firstTwo)
	}
}

func TestGenerateInvalidBounds(t *testing.T) {
	cases := []types.SearchBounds{
		bounds("", 4, 1, 2),
		bounds("m", 0, 1, 1),
		bounds("m", 1, 0, 1),
		bounds("m", 1, 1, 0),
		bounds("m", -1, 1, 1),
	}
	for _, b := range cases {
		if _, err := Generate(b); !IsInvalidBounds(err) {
			t.Fatalf("bounds %+v: expected invalid bounds error, got %v", b, err)
		}
	}
}

package types

import (
	"fmt"
	"strings"
	"time"
)

// DeviceKind identifies where model instances are placed.
type DeviceKind string

const (
	KindGPU DeviceKind = "KIND_GPU"
	KindCPU DeviceKind = "KIND_CPU"
)

// InstanceGroup places Count instances of a model on a device kind.
type InstanceGroup struct {
	// Device kind for this group.
	// example: KIND_GPU
	Kind DeviceKind `json:"kind" example:"KIND_GPU"`
	// Number of instances, at least 1.
	// example: 1
	Count int `json:"count" example:"1"`
}

// DynamicBatching describes the server-side batching policy of a config.
// A nil *DynamicBatching means batching is disabled; an empty struct means
// enabled with server defaults; a non-empty PreferredBatchSizes means enabled
// with those sizes.
type DynamicBatching struct {
	PreferredBatchSizes []int `json:"preferred_batch_sizes,omitempty"`
}

// ServingConfig is one candidate deployment of a model on the inference
// server. Values are immutable once emitted by the generator; equality over
// all fields defines deduplication and checkpoint matching.
type ServingConfig struct {
	MaxBatchSize    int              `json:"max_batch_size"`
	Instances       []InstanceGroup  `json:"instances"`
	DynamicBatching *DynamicBatching `json:"dynamic_batching,omitempty"`
}

// CPUOnly reports whether no GPU instance is present.
func (c ServingConfig) CPUOnly() bool {
	for _, g := range c.Instances {
		if g.Kind == KindGPU {
			return false
		}
	}
	return true
}

// Equal reports field-wise equality, including batching-policy shape
// (disabled vs default-enabled vs preferred sizes).
func (c ServingConfig) Equal(o ServingConfig) bool {
	return c.Key() == o.Key()
}

// Key returns a stable string identity for the config, used for dedup and
// for log/report lines.
func (c ServingConfig) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mbs=%d", c.MaxBatchSize)
	b.WriteString(";inst=")
	for i, g := range c.Instances {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%d", g.Kind, g.Count)
	}
	switch {
	case c.DynamicBatching == nil:
		b.WriteString(";db=off")
	case len(c.DynamicBatching.PreferredBatchSizes) == 0:
		b.WriteString(";db=default")
	default:
		b.WriteString(";db=preferred:")
		for i, p := range c.DynamicBatching.PreferredBatchSizes {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", p)
		}
	}
	return b.String()
}

// SearchBounds is the per-model search input. All numeric bounds must be >= 1.
type SearchBounds struct {
	// Model name, unique within one run.
	// example: my_model1
	ModelName string `json:"model_name" yaml:"name" toml:"name" example:"my_model1"`
	// Model repository the model lives in (overrides the run-level repository).
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty" toml:"repository,omitempty"`
	// Ceiling for max batch size of generated configs.
	MaxBatchSize int `json:"max_batch_size" yaml:"max_batch_size" toml:"max_batch_size"`
	// Highest instance count to enumerate.
	MaxInstanceCount int `json:"max_instance_count" yaml:"max_instance_count" toml:"max_instance_count"`
	// Highest preferred batch size to enumerate.
	MaxPreferredBatchSize int `json:"max_preferred_batch_size" yaml:"max_preferred_batch_size" toml:"max_preferred_batch_size"`
}

// LatencyStats carries the latency distribution of one measurement, in
// milliseconds.
type LatencyStats struct {
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// Sample is the raw result of one load-test call.
type Sample struct {
	Latency    LatencyStats `json:"latency_ms"`
	Throughput float64      `json:"throughput"`
}

// MeasurementStatus marks whether one measurement point succeeded.
type MeasurementStatus string

const (
	MeasurementOK     MeasurementStatus = "ok"
	MeasurementFailed MeasurementStatus = "failed"
)

// MeasurementRecord is the result of profiling one (config, concurrency)
// pair. Immutable once appended to a profile.
type MeasurementRecord struct {
	Concurrency int               `json:"concurrency"`
	Status      MeasurementStatus `json:"status"`
	Error       string            `json:"error,omitempty"`
	Throughput  float64           `json:"throughput,omitempty"`
	Latency     *LatencyStats     `json:"latency_ms,omitempty"`
	MeasuredAt  time.Time         `json:"measured_at"`
}

// OK reports whether the point was measured successfully.
func (r MeasurementRecord) OK() bool { return r.Status == MeasurementOK }

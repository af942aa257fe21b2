package types

import "testing"

func TestServingConfigEquality(t *testing.T) {
	gpu1 := []InstanceGroup{{Kind: KindGPU, Count: 1}}
	cases := []struct {
		name string
		a, b ServingConfig
		want bool
	}{
		{"identical disabled", ServingConfig{MaxBatchSize: 4, Instances: gpu1}, ServingConfig{MaxBatchSize: 4, Instances: gpu1}, true},
		{"disabled vs default", ServingConfig{MaxBatchSize: 4, Instances: gpu1}, ServingConfig{MaxBatchSize: 4, Instances: gpu1, DynamicBatching: &DynamicBatching{}}, false},
		{"default vs preferred", ServingConfig{MaxBatchSize: 4, Instances: gpu1, DynamicBatching: &DynamicBatching{}}, ServingConfig{MaxBatchSize: 4, Instances: gpu1, DynamicBatching: &DynamicBatching{PreferredBatchSizes: []int{1}}}, false},
		{"different preferred", ServingConfig{MaxBatchSize: 4, Instances: gpu1, DynamicBatching: &DynamicBatching{PreferredBatchSizes: []int{1}}}, ServingConfig{MaxBatchSize: 4, Instances: gpu1, DynamicBatching: &DynamicBatching{PreferredBatchSizes: []int{2}}}, false},
		{"different batch size", ServingConfig{MaxBatchSize: 4, Instances: gpu1}, ServingConfig{MaxBatchSize: 8, Instances: gpu1}, false},
		{"different instance count", ServingConfig{MaxBatchSize: 4, Instances: gpu1}, ServingConfig{MaxBatchSize: 4, Instances: []InstanceGroup{{Kind: KindGPU, Count: 2}}}, false},
	}
	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("%s: Equal=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestServingConfigCPUOnly(t *testing.T) {
	gpu := ServingConfig{Instances: []InstanceGroup{{Kind: KindGPU, Count: 1}}}
	cpu := ServingConfig{Instances: []InstanceGroup{{Kind: KindCPU, Count: 2}}}
	mixed := ServingConfig{Instances: []InstanceGroup{{Kind: KindCPU, Count: 2}, {Kind: KindGPU, Count: 1}}}
	if gpu.CPUOnly() {
		t.Fatalf("gpu config reported cpu-only")
	}
	if !cpu.CPUOnly() {
		t.Fatalf("cpu config not reported cpu-only")
	}
	if mixed.CPUOnly() {
		t.Fatalf("mixed config reported cpu-only")
	}
}

func TestConfigProfileFailed(t *testing.T) {
	var p ConfigProfile
	if p.Failed() {
		t.Fatalf("empty profile should not be failed")
	}
	p.Measurements = append(p.Measurements, MeasurementRecord{Concurrency: 1, Status: MeasurementFailed})
	if !p.Failed() {
		t.Fatalf("all-failed profile should be failed")
	}
	p.Measurements = append(p.Measurements, MeasurementRecord{Concurrency: 2, Status: MeasurementOK})
	if p.Failed() {
		t.Fatalf("profile with a successful point should not be failed")
	}
	if !p.HasConcurrency(1) || !p.HasConcurrency(2) || p.HasConcurrency(4) {
		t.Fatalf("unexpected HasConcurrency results")
	}
}

func TestCheckpointModelCreatesProfile(t *testing.T) {
	cp := NewCheckpoint()
	p := cp.Model("m1")
	if p == nil || p.Name != "m1" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if cp.Model("m1") != p {
		t.Fatalf("expected same profile on second call")
	}
	cfg := ServingConfig{MaxBatchSize: 4, Instances: []InstanceGroup{{Kind: KindGPU, Count: 1}}}
	if p.FindConfig(cfg) != nil {
		t.Fatalf("expected no config entry yet")
	}
	entry := &ConfigProfile{Config: cfg}
	p.Configs = append(p.Configs, entry)
	if p.FindConfig(cfg) != entry {
		t.Fatalf("FindConfig did not return the entry")
	}
}

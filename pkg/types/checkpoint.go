package types

// CheckpointVersion is written into every checkpoint file so later runs can
// detect format changes instead of misreading old files.
const CheckpointVersion = 1

// ConfigProfile pairs one serving config with its measurements, in
// increasing concurrency order.
type ConfigProfile struct {
	Config       ServingConfig       `json:"config"`
	Measurements []MeasurementRecord `json:"measurements"`
}

// HasConcurrency reports whether a measurement for the given level exists.
func (p *ConfigProfile) HasConcurrency(level int) bool {
	for _, m := range p.Measurements {
		if m.Concurrency == level {
			return true
		}
	}
	return false
}

// Failed reports whether every recorded point for this config failed.
// A config with no measurements yet is not considered failed.
func (p *ConfigProfile) Failed() bool {
	if len(p.Measurements) == 0 {
		return false
	}
	for _, m := range p.Measurements {
		if m.OK() {
			return false
		}
	}
	return true
}

// ModelProfile aggregates everything measured for one model. Configs keep
// generator order; measurements keep sweep order.
type ModelProfile struct {
	Name    string           `json:"name"`
	Configs []*ConfigProfile `json:"configs"`
}

// FindConfig returns the profile entry equal to cfg, or nil.
func (p *ModelProfile) FindConfig(cfg ServingConfig) *ConfigProfile {
	for _, cp := range p.Configs {
		if cp.Config.Equal(cfg) {
			return cp
		}
	}
	return nil
}

// Checkpoint is the durable snapshot of all measurements collected so far,
// keyed by model name. The on-disk file is the single source of truth for
// what has already been measured.
type Checkpoint struct {
	Version int                      `json:"version"`
	Models  map[string]*ModelProfile `json:"models"`
}

// NewCheckpoint returns an empty checkpoint at the current format version.
func NewCheckpoint() *Checkpoint {
	return &Checkpoint{Version: CheckpointVersion, Models: map[string]*ModelProfile{}}
}

// Model returns the profile for name, creating an empty one if absent.
func (c *Checkpoint) Model(name string) *ModelProfile {
	if c.Models == nil {
		c.Models = map[string]*ModelProfile{}
	}
	p, ok := c.Models[name]
	if !ok {
		p = &ModelProfile{Name: name}
		c.Models[name] = p
	}
	return p
}

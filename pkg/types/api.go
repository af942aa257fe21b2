package types

// ModelOutcome is the caller-observable terminal result for one model.
type ModelOutcome struct {
	// Model name as supplied by the caller.
	// example: my_model1
	Name string `json:"name" example:"my_model1"`
	// Terminal status: completed or failed.
	// example: completed
	Status string `json:"status" example:"completed"`
	// Failure reason, set only when Status is failed.
	// example: invalid bounds: max_instance_count must be >= 1
	Reason string `json:"reason,omitempty"`
	// Number of configs with at least one successful measurement.
	// example: 4
	ConfigsProfiled int `json:"configs_profiled" example:"4"`
	// Number of configs whose every measurement failed.
	// example: 0
	ConfigsFailed int `json:"configs_failed" example:"0"`
	// Total measurement points recorded for the model, failed points included.
	// example: 4
	Measurements int `json:"measurements" example:"4"`
}

// RunReport is returned by the orchestrator: one outcome per model, in
// caller-supplied order.
type RunReport struct {
	Outcomes []ModelOutcome `json:"outcomes"`
}

// ModelStatus summarizes one model's live progress for GET /status.
type ModelStatus struct {
	// Model name.
	// example: my_model1
	Name string `json:"name" example:"my_model1"`
	// Current state: pending, generating, sweeping, completed, failed.
	// example: sweeping
	State string `json:"state" example:"sweeping"`
	// Configs fully swept so far.
	// example: 2
	ConfigsDone int `json:"configs_done" example:"2"`
	// Configs generated for the model.
	// example: 4
	ConfigsTotal int `json:"configs_total" example:"4"`
	// Failure reason when State is failed.
	Reason string `json:"reason,omitempty"`
}

// RunStatus is returned by GET /status.
type RunStatus struct {
	// Overall run state: idle, running, done, canceled.
	// example: running
	State string `json:"state" example:"running"`
	// Per-model progress in caller-supplied order.
	Models []ModelStatus `json:"models"`
	// Path of the checkpoint file the run flushes to.
	// example: ./checkpoint.json
	CheckpointPath string `json:"checkpoint_path,omitempty" example:"./checkpoint.json"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: checkpoint not written yet
	Error string `json:"error" example:"checkpoint not written yet"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

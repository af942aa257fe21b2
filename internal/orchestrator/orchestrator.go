// Package orchestrator sequences per-model config searches with failure
// isolation and resumable checkpointing.
package orchestrator

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"autotune/internal/checkpoint"
	"autotune/internal/repository"
	"autotune/internal/search"
	"autotune/internal/sweep"
	"autotune/pkg/types"
)

// Config wires an Orchestrator.
type Config struct {
	// Strategy to use; nil selects enumerate-and-sweep with a default driver.
	Strategy Strategy
	// Target is the load-test collaborator. Required.
	Target sweep.LoadTester
	// Repo resolves model names; nil skips repository lookup (tests).
	Repo *repository.Repository
	// Policy yields the concurrency levels each config is swept at.
	Policy sweep.LevelPolicy
	// CheckpointPath is the durable result file for this run.
	CheckpointPath string
	Log            zerolog.Logger
}

// Orchestrator owns the checkpoint for the run's duration. Models are
// processed sequentially: they share one inference server, and concurrent
// load tests would confound each other's latency numbers.
type Orchestrator struct {
	strategy Strategy
	target   sweep.LoadTester
	repo     *repository.Repository
	policy   sweep.LevelPolicy
	path     string
	log      zerolog.Logger

	mu       sync.RWMutex
	runState string
	models   []types.ModelStatus
}

// New builds an Orchestrator from cfg, filling defaults.
func New(cfg Config) *Orchestrator {
	strat := cfg.Strategy
	if strat == nil {
		strat = NewEnumerateSweep(sweep.NewDriver(0, cfg.Log))
	}
	policy := cfg.Policy
	if policy == nil {
		policy = sweep.Doubling{Start: 1, Max: 1}
	}
	return &Orchestrator{
		strategy: strat,
		target:   cfg.Target,
		repo:     cfg.Repo,
		policy:   policy,
		path:     cfg.CheckpointPath,
		log:      cfg.Log,
		runState: "idle",
	}
}

// CheckpointPath returns the checkpoint file the run flushes to.
func (o *Orchestrator) CheckpointPath() string { return o.path }

// Run searches every model in caller-supplied order and returns one outcome
// per terminal model, in that order.
//
// The existing checkpoint is loaded first; (config, level) pairs already
// present are skipped, so re-running after a crash resumes rather than
// repeats. The checkpoint is flushed after each model reaches a terminal
// state, bounding crash loss to one model's unflushed measurements. On
// cancellation the accumulated state is flushed before returning.
func (o *Orchestrator) Run(ctx context.Context, models []types.SearchBounds) (types.RunReport, error) {
	cp, err := checkpoint.Load(o.path)
	if err != nil {
		// Corrupt or unreadable prior state aborts the run: silently
		// discarding earlier measurements is worse than stopping.
		return types.RunReport{}, err
	}
	o.initStatus(models)

	var report types.RunReport
	seen := make(map[string]bool, len(models))
	for i, bounds := range models {
		if ctx.Err() != nil {
			break
		}
		outcome, runErr := o.runModel(ctx, cp, i, bounds, seen)
		if runErr != nil {
			_ = checkpoint.Flush(cp, o.path)
			return report, runErr
		}
		if ctx.Err() != nil {
			// Canceled mid-model: the model is not terminal, keep its
			// partial measurements for resumption.
			break
		}
		report.Outcomes = append(report.Outcomes, outcome)
		o.logOutcome(outcome)
		if err := o.flush(cp); err != nil {
			return report, err
		}
	}

	if ctx.Err() != nil {
		if err := o.flush(cp); err != nil {
			return report, err
		}
		o.setRunState("canceled")
		return report, ctx.Err()
	}
	o.setRunState("done")
	return report, nil
}

// runModel drives one model's state machine. A returned error is run-fatal
// (orchestration bug or I/O); model-level failures come back as a Failed
// outcome instead.
func (o *Orchestrator) runModel(ctx context.Context, cp *types.Checkpoint, idx int, bounds types.SearchBounds, seen map[string]bool) (types.ModelOutcome, error) {
	name := bounds.ModelName
	o.setState(idx, StateGenerating, "")

	// A repeated model name is a caller error, not a merge.
	if seen[name] {
		return o.fail(idx, name, search.ErrInvalidBounds("duplicate model name: "+name).Error()), nil
	}
	seen[name] = true

	repo := o.repo
	if bounds.Repository != "" {
		r, err := repository.Open(bounds.Repository)
		if err != nil {
			return o.fail(idx, name, err.Error()), nil
		}
		repo = r
	}
	if repo != nil {
		if _, err := repo.Lookup(name); err != nil {
			return o.fail(idx, name, err.Error()), nil
		}
	}

	configs, err := o.strategy.Generate(bounds)
	if err != nil {
		return o.fail(idx, name, err.Error()), nil
	}
	o.setSweeping(idx, len(configs))

	levels := o.policy.Levels()
	for _, cfg := range configs {
		if ctx.Err() != nil {
			return types.ModelOutcome{}, nil
		}
		remaining := remainingLevels(cp, name, cfg, levels)
		if len(remaining) > 0 {
			records := o.strategy.Sweep(ctx, name, cfg, remaining, o.target)
			if len(records) > 0 {
				if err := checkpoint.Append(cp, name, cfg, records); err != nil {
					return types.ModelOutcome{}, err
				}
			}
		}
		if ctx.Err() != nil {
			// The sweep may have returned early; don't count the config done.
			return types.ModelOutcome{}, nil
		}
		o.configDone(idx)
	}

	outcome := summarize(cp, name, configs)
	o.setState(idx, StateCompleted, "")
	modelsTotal.WithLabelValues(outcome.Status).Inc()
	return outcome, nil
}

// remainingLevels filters out levels already measured for (model, cfg).
func remainingLevels(cp *types.Checkpoint, model string, cfg types.ServingConfig, levels []int) []int {
	profile, ok := cp.Models[model]
	if !ok {
		return levels
	}
	entry := profile.FindConfig(cfg)
	if entry == nil {
		return levels
	}
	var out []int
	for _, l := range levels {
		if !entry.HasConcurrency(l) {
			out = append(out, l)
		}
	}
	return out
}

// summarize builds the Completed outcome for a model from its checkpointed
// profile. Configs whose every point failed are counted separately; they do
// not fail the model.
func summarize(cp *types.Checkpoint, name string, configs []types.ServingConfig) types.ModelOutcome {
	out := types.ModelOutcome{Name: name, Status: string(StateCompleted)}
	profile, ok := cp.Models[name]
	if !ok {
		return out
	}
	for _, cfg := range configs {
		entry := profile.FindConfig(cfg)
		if entry == nil {
			continue
		}
		out.Measurements += len(entry.Measurements)
		if entry.Failed() {
			out.ConfigsFailed++
		} else {
			out.ConfigsProfiled++
		}
	}
	return out
}

func (o *Orchestrator) fail(idx int, name, reason string) types.ModelOutcome {
	o.setState(idx, StateFailed, reason)
	modelsTotal.WithLabelValues(string(StateFailed)).Inc()
	return types.ModelOutcome{Name: name, Status: string(StateFailed), Reason: reason}
}

func (o *Orchestrator) flush(cp *types.Checkpoint) error {
	if err := checkpoint.Flush(cp, o.path); err != nil {
		return err
	}
	checkpointFlushes.Inc()
	return nil
}

func (o *Orchestrator) logOutcome(out types.ModelOutcome) {
	if out.Status == string(StateFailed) {
		o.log.Error().Str("model", out.Name).Str("reason", out.Reason).Msg("model failed")
		return
	}
	o.log.Info().Str("model", out.Name).
		Int("configs_profiled", out.ConfigsProfiled).
		Int("configs_failed", out.ConfigsFailed).
		Int("measurements", out.Measurements).
		Msg("model completed")
}

// Package checkpoint persists sweep results incrementally and resumably.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"autotune/internal/common/fsutil"
	"autotune/pkg/types"
)

// Load deserializes the checkpoint at path. A missing file yields an empty
// checkpoint; an unparseable one is a corrupt-checkpoint error.
func Load(path string) (*types.Checkpoint, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.NewCheckpoint(), nil
		}
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	var cp types.Checkpoint
	if err := json.Unmarshal(b, &cp); err != nil {
		return nil, corruptError{path: path, err: err}
	}
	if cp.Version > types.CheckpointVersion {
		return nil, corruptError{path: path, err: fmt.Errorf("unsupported version %d", cp.Version)}
	}
	if cp.Models == nil {
		cp.Models = map[string]*types.ModelProfile{}
	}
	return &cp, nil
}

// Append merges new measurements for (model, cfg) into cp, preserving
// generator ordering of configs and sweep ordering of levels. A level already
// present for the config is rejected as a duplicate.
func Append(cp *types.Checkpoint, model string, cfg types.ServingConfig, records []types.MeasurementRecord) error {
	profile := cp.Model(model)
	entry := profile.FindConfig(cfg)
	if entry == nil {
		entry = &types.ConfigProfile{Config: cfg}
		profile.Configs = append(profile.Configs, entry)
	}
	for _, r := range records {
		if entry.HasConcurrency(r.Concurrency) {
			return duplicateError{model: model, config: cfg.Key(), concurrency: r.Concurrency}
		}
		entry.Measurements = append(entry.Measurements, r)
	}
	return nil
}

// Flush durably persists cp to path. The file is written to a temp name in
// the same directory and renamed into place, so a crash mid-write never
// leaves a torn checkpoint visible to a concurrent reader or a later run.
func Flush(cp *types.Checkpoint, path string) error {
	b, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsutil.EnsureDir(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp checkpoint: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp checkpoint: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename checkpoint: %w", err)
	}
	return nil
}

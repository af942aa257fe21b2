package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: :9999
server_url: http://localhost:8000
repository: /models
checkpoint_path: ./cp.json
measure_timeout_sec: 30
concurrency:
  mode: doubling
  start: 1
  max: 64
models:
  - name: my_model1
    max_batch_size: 4
    max_instance_count: 1
    max_preferred_batch_size: 2
  - name: my_model2
    max_batch_size: 8
    max_instance_count: 2
    max_preferred_batch_size: 4
`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":9999" || cfg.ServerURL != "http://localhost:8000" || cfg.Repository != "/models" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.CheckpointPath != "./cp.json" || cfg.MeasureTimeoutSec != 30 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Concurrency.Mode != "doubling" || cfg.Concurrency.Start != 1 || cfg.Concurrency.Max != 64 {
		t.Fatalf("unexpected concurrency: %+v", cfg.Concurrency)
	}
	if len(cfg.Models) != 2 {
		t.Fatalf("expected 2 models got %d", len(cfg.Models))
	}
	m := cfg.Models[0]
	if m.ModelName != "my_model1" || m.MaxBatchSize != 4 || m.MaxInstanceCount != 1 || m.MaxPreferredBatchSize != 2 {
		t.Fatalf("unexpected model bounds: %+v", m)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","server_url":"http://h:1","checkpoint_path":"/c.json",
	 "concurrency":{"mode":"explicit","levels":[1,4,16]},
	 "models":[{"model_name":"m1","max_batch_size":2,"max_instance_count":1,"max_preferred_batch_size":1}]}`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":7070" || cfg.ServerURL != "http://h:1" || cfg.CheckpointPath != "/c.json" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Concurrency.Mode != "explicit" || len(cfg.Concurrency.Levels) != 3 {
		t.Fatalf("unexpected concurrency: %+v", cfg.Concurrency)
	}
	if len(cfg.Models) != 1 || cfg.Models[0].ModelName != "m1" {
		t.Fatalf("unexpected models: %+v", cfg.Models)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", `addr = ":8081"
server_url = "http://h:2"

[concurrency]
mode = "doubling"
start = 1
max = 8

[[models]]
name = "m1"
max_batch_size = 4
max_instance_count = 2
max_preferred_batch_size = 2
`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":8081" || cfg.ServerURL != "http://h:2" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Models) != 1 || cfg.Models[0].MaxInstanceCount != 2 {
		t.Fatalf("unexpected models: %+v", cfg.Models)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil { t.Fatalf("expected error on empty path") }
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil { t.Fatalf("expected unsupported extension error") }
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil { t.Fatalf("expected error for missing file") }
	bad := writeTempFile(t, d, "bad.yaml", "models: {not: [valid")
	if _, err := Load(bad); err == nil { t.Fatalf("expected parse error") }
}

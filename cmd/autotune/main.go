package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"autotune/internal/config"
	"autotune/internal/httpapi"
	"autotune/internal/loadtest"
	"autotune/internal/orchestrator"
	"autotune/internal/repository"
	"autotune/internal/sweep"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var (
		cfgPath  string
		logLevel string
	)
	root := &cobra.Command{
		Use:           "autotune",
		Short:         "Search serving configurations for models behind an inference server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Run config file (.yaml/.json/.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", envDefault("AUTOTUNE_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the config search for every model in the config file",
		Example: "  autotune run --config search.yaml\n" +
			"  autotune run --config search.yaml --checkpoint ./checkpoint.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, cfgPath, logLevel)
		},
	}
	runCmd.Flags().String("checkpoint", "", "Checkpoint path (overrides config file)")
	runCmd.Flags().String("server-url", "", "Inference server base URL (overrides config file)")
	runCmd.Flags().String("addr", "", "Monitoring HTTP listen address, e.g. :8080 (empty disables)")
	root.AddCommand(runCmd)

	return root
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

func runSearch(cmd *cobra.Command, cfgPath, logLevel string) error {
	if cfgPath == "" {
		return fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// Flag overrides
	if v, _ := cmd.Flags().GetString("checkpoint"); v != "" {
		cfg.CheckpointPath = v
	}
	if v, _ := cmd.Flags().GetString("server-url"); v != "" {
		cfg.ServerURL = v
	}
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	// Defaults
	if cfg.CheckpointPath == "" {
		cfg.CheckpointPath = "./checkpoint.json"
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8000"
	}
	if len(cfg.Models) == 0 {
		return fmt.Errorf("config names no models to search")
	}

	log := newLogger(logLevel)

	policy, err := levelPolicy(cfg.Concurrency)
	if err != nil {
		return err
	}

	var repo *repository.Repository
	if cfg.Repository != "" {
		repo, err = repository.Open(cfg.Repository)
		if err != nil {
			return fmt.Errorf("open model repository: %w", err)
		}
	}

	target := loadtest.New(cfg.ServerURL, 10*time.Second)
	driver := sweep.NewDriver(time.Duration(cfg.MeasureTimeoutSec)*time.Second, log)
	orch := orchestrator.New(orchestrator.Config{
		Strategy:       orchestrator.NewEnumerateSweep(driver),
		Target:         target,
		Repo:           repo,
		Policy:         policy,
		CheckpointPath: cfg.CheckpointPath,
		Log:            log,
	})

	// Graceful cancellation: first signal cancels between measurements and
	// lets the orchestrator flush; second signal kills the process.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	if cfg.Addr != "" {
		httpapi.SetLogger(log)
		srv = &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(orch)}
		go func() {
			log.Info().Str("addr", cfg.Addr).Msg("monitoring server listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("monitoring server error")
			}
		}()
	}

	report, runErr := orch.Run(ctx, cfg.Models)
	for _, out := range report.Outcomes {
		if out.Status == "failed" {
			fmt.Printf("%s: failed (%s)\n", out.Name, out.Reason)
			continue
		}
		fmt.Printf("%s: completed, %d configs profiled, %d failed, %d measurements\n",
			out.Name, out.ConfigsProfiled, out.ConfigsFailed, out.Measurements)
	}

	if srv != nil {
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown error")
		}
	}

	if runErr != nil {
		if runErr == context.Canceled {
			log.Warn().Msg("run canceled; checkpoint flushed, re-run to resume")
		}
		return runErr
	}
	return nil
}

func levelPolicy(c config.Concurrency) (sweep.LevelPolicy, error) {
	switch c.Mode {
	case "", "doubling":
		start, max := c.Start, c.Max
		if start == 0 {
			start = 1
		}
		if max == 0 {
			max = start
		}
		return sweep.Doubling{Start: start, Max: max}, nil
	case "explicit":
		if len(c.Levels) == 0 {
			return nil, fmt.Errorf("concurrency mode explicit requires levels")
		}
		return sweep.Explicit{Values: c.Levels}, nil
	default:
		return nil, fmt.Errorf("unknown concurrency mode: %s", c.Mode)
	}
}

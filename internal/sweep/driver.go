// Package sweep profiles one serving config across increasing concurrency.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"autotune/pkg/types"
)

// LoadTester is the external load-test collaborator: run `concurrency`
// clients against `cfg` for `model` and return latency/throughput samples.
// Calls are synchronous and may fail or time out; retries happen below this
// interface, not in the driver.
type LoadTester interface {
	Measure(ctx context.Context, model string, cfg types.ServingConfig, concurrency int) (types.Sample, error)
}

const defaultMeasureTimeout = 120 * time.Second

// Driver runs one config through an ordered list of concurrency levels.
type Driver struct {
	timeout time.Duration
	log     zerolog.Logger
}

// NewDriver builds a driver with a per-measurement timeout ceiling.
// timeout <= 0 uses the package default.
func NewDriver(timeout time.Duration, log zerolog.Logger) *Driver {
	if timeout <= 0 {
		timeout = defaultMeasureTimeout
	}
	return &Driver{timeout: timeout, log: log}
}

// Profile measures cfg at each level in order, one record per level.
//
// A failed call (server error, timeout) becomes a failure-status record and
// the sweep continues with the next level; one bad point must not discard
// points already collected for the config. On run cancellation the records
// collected so far are returned; a call interrupted mid-flight by the cancel
// is dropped rather than recorded, so a resumed run measures it again.
func (d *Driver) Profile(ctx context.Context, model string, cfg types.ServingConfig, levels []int, target LoadTester) []types.MeasurementRecord {
	records := make([]types.MeasurementRecord, 0, len(levels))
	for _, level := range levels {
		if ctx.Err() != nil {
			return records
		}
		rec, ok := d.measure(ctx, model, cfg, level, target)
		if !ok {
			return records
		}
		records = append(records, rec)
	}
	return records
}

// measure runs one load test. ok is false when the run context was canceled
// mid-call: that point was interrupted, not measured, and must not be
// recorded.
func (d *Driver) measure(ctx context.Context, model string, cfg types.ServingConfig, level int, target LoadTester) (types.MeasurementRecord, bool) {
	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	sample, err := target.Measure(callCtx, model, cfg, level)
	dur := time.Since(start)
	measurementDuration.Observe(dur.Seconds())

	if err != nil {
		if ctx.Err() != nil {
			d.log.Debug().Str("model", model).Str("config", cfg.Key()).Int("concurrency", level).
				Dur("dur", dur).Msg("measurement interrupted by cancellation")
			return types.MeasurementRecord{}, false
		}
		measurementsTotal.WithLabelValues(string(types.MeasurementFailed)).Inc()
		d.log.Warn().Str("model", model).Str("config", cfg.Key()).Int("concurrency", level).
			Dur("dur", dur).Err(err).Msg("measurement failed")
		return types.MeasurementRecord{
			Concurrency: level,
			Status:      types.MeasurementFailed,
			Error:       err.Error(),
			MeasuredAt:  time.Now().UTC(),
		}, true
	}
	measurementsTotal.WithLabelValues(string(types.MeasurementOK)).Inc()
	d.log.Debug().Str("model", model).Str("config", cfg.Key()).Int("concurrency", level).
		Dur("dur", dur).Float64("throughput", sample.Throughput).Msg("measurement ok")
	lat := sample.Latency
	return types.MeasurementRecord{
		Concurrency: level,
		Status:      types.MeasurementOK,
		Throughput:  sample.Throughput,
		Latency:     &lat,
		MeasuredAt:  time.Now().UTC(),
	}, true
}

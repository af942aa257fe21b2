package loadtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autotune/pkg/types"
)

func gpuConfig() types.ServingConfig {
	return types.ServingConfig{MaxBatchSize: 4, Instances: []types.InstanceGroup{{Kind: types.KindGPU, Count: 1}}}
}

func TestMeasureSuccess(t *testing.T) {
	var gotReq measureRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/loadtest" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(measureResponse{
			Latency:    types.LatencyStats{Avg: 5.5, P50: 5, P90: 8, P95: 9, P99: 12},
			Throughput: 210.5,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	sample, err := c.Measure(context.Background(), "m1", gpuConfig(), 8)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if sample.Throughput != 210.5 || sample.Latency.P99 != 12 {
		t.Fatalf("unexpected sample: %+v", sample)
	}
	if gotReq.Model != "m1" || gotReq.Concurrency != 8 {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
	if !gotReq.Config.Equal(gpuConfig()) {
		t.Fatalf("config not round-tripped: %+v", gotReq.Config)
	}
}

func TestMeasureHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model failed to load", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.Measure(context.Background(), "m1", gpuConfig(), 1); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestMeasureErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(measureResponse{Error: "no clients could connect"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Measure(context.Background(), "m1", gpuConfig(), 1)
	if err == nil || err.Error() != "no clients could connect" {
		t.Fatalf("expected server-reported error, got %v", err)
	}
}

func TestMeasureRespectsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Measure(ctx, "m1", gpuConfig(), 1)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

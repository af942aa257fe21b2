// Package loadtest talks to the inference server's load-generation endpoint.
package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"autotune/pkg/types"
)

// Client implements sweep.LoadTester over HTTP. One call deploys the given
// config for the model and runs `concurrency` clients against it; the server
// replies with aggregated latency/throughput samples. Retries for flaky runs
// happen server-side, not here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// measureRequest is the payload for POST /v2/loadtest.
type measureRequest struct {
	Model       string              `json:"model"`
	Config      types.ServingConfig `json:"config"`
	Concurrency int                 `json:"concurrency"`
}

// measureResponse mirrors the server's sample payload.
type measureResponse struct {
	Latency    types.LatencyStats `json:"latency_ms"`
	Throughput float64            `json:"throughput"`
	Error      string             `json:"error,omitempty"`
}

// New builds a client for the server at baseURL.
// Client.Timeout stays 0: every request carries a context deadline set by
// the sweep driver.
func New(baseURL string, connectTimeout time.Duration) *Client {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: tr, Timeout: 0},
	}
}

// Measure runs one load test and returns its samples.
func (c *Client) Measure(ctx context.Context, model string, cfg types.ServingConfig, concurrency int) (types.Sample, error) {
	body, err := json.Marshal(measureRequest{Model: model, Config: cfg, Concurrency: concurrency})
	if err != nil {
		return types.Sample{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/loadtest", bytes.NewReader(body))
	if err != nil {
		return types.Sample{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return types.Sample{}, ctx.Err()
		}
		return types.Sample{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return types.Sample{}, fmt.Errorf("load test http error: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	var mr measureResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return types.Sample{}, fmt.Errorf("decode load test response: %w", err)
	}
	if mr.Error != "" {
		return types.Sample{}, errors.New(mr.Error)
	}
	return types.Sample{Latency: mr.Latency, Throughput: mr.Throughput}, nil
}

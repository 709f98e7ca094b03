// FILE: pkg/embedding/client.go
// PURPOSE: Embedding client with query cache and sticky local fallback

package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"event-discovery-be/internal/pkg/logger"
)

// ErrRemoteUnavailable wraps remote service failures when local fallback is
// disabled. With fallback enabled the client recovers and never returns it.
var ErrRemoteUnavailable = errors.New("embedding service unavailable")

// Mode is the client's encoding path. The remote→local transition is sticky:
// once the client falls back it stays local for the rest of its lifetime.
type Mode int32

const (
	ModeRemote Mode = iota
	ModeLocal
)

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "remote"
}

// Config carries the client's construction parameters.
type Config struct {
	// ServiceURL is the remote embedding service base URL. Empty means
	// local-only operation.
	ServiceURL string
	// FallbackToLocal enables the sticky remote→local fallback on remote
	// connect/timeout/HTTP errors.
	FallbackToLocal bool
	// Timeout bounds each remote HTTP call. Defaults to 10s.
	Timeout time.Duration
	// CacheCapacity is the entry cap before bulk eviction. Defaults to 1000.
	CacheCapacity int
}

const defaultCacheCapacity = 1000

// Client produces fixed-dimension embeddings for text with a normalized-key
// cache shared between the remote and local paths. Safe for concurrent use.
type Client struct {
	serviceURL      string
	fallbackToLocal bool
	httpClient      *http.Client
	local           LocalProvider
	log             logger.ILogger

	mode atomic.Int32

	mu       sync.Mutex
	cache    map[string][]float32
	order    []string // normalized keys in insertion order, for eviction
	capacity int
}

func NewClient(cfg Config, local LocalProvider, log logger.ILogger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	capacity := cfg.CacheCapacity
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}

	c := &Client{
		serviceURL:      strings.TrimRight(cfg.ServiceURL, "/"),
		fallbackToLocal: cfg.FallbackToLocal,
		httpClient:      &http.Client{Timeout: timeout},
		local:           local,
		log:             log,
		cache:           make(map[string][]float32),
		capacity:        capacity,
	}
	if c.serviceURL == "" {
		c.mode.Store(int32(ModeLocal))
	}
	return c
}

// Mode returns the current encoding path.
func (c *Client) Mode() Mode {
	return Mode(c.mode.Load())
}

var reCollapseSpace = regexp.MustCompile(`\s+`)

func normalizeKey(text string) string {
	return reCollapseSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

// Encode generates embeddings for the given texts, serving cache hits from
// the normalized-key cache and encoding the rest remotely or locally
// depending on the current mode. Results come back in input order.
func (c *Client) Encode(ctx context.Context, texts []string, useCache bool) ([][]float32, error) {
	results := make([][]float32, len(texts))

	var uncachedTexts []string
	var uncachedIdx []int

	if useCache {
		c.mu.Lock()
		for i, text := range texts {
			if vec, ok := c.cache[normalizeKey(text)]; ok {
				results[i] = vec
			} else {
				uncachedTexts = append(uncachedTexts, text)
				uncachedIdx = append(uncachedIdx, i)
			}
		}
		c.mu.Unlock()
	} else {
		uncachedTexts = texts
		uncachedIdx = make([]int, len(texts))
		for i := range texts {
			uncachedIdx[i] = i
		}
	}

	if len(uncachedTexts) == 0 {
		return results, nil
	}

	vectors, err := c.encode(ctx, uncachedTexts)
	if err != nil {
		return nil, err
	}

	if useCache {
		c.mu.Lock()
		for i, text := range uncachedTexts {
			c.put(normalizeKey(text), vectors[i])
		}
		c.mu.Unlock()
	}

	for i, vec := range vectors {
		results[uncachedIdx[i]] = vec
	}
	return results, nil
}

// EncodeOne is a convenience wrapper for a single text.
func (c *Client) EncodeOne(ctx context.Context, text string, useCache bool) ([]float32, error) {
	vectors, err := c.Encode(ctx, []string{text}, useCache)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *Client) encode(ctx context.Context, texts []string) ([][]float32, error) {
	if c.Mode() == ModeLocal {
		return c.local.Encode(ctx, texts)
	}

	vectors, err := c.encodeRemote(ctx, texts)
	if err == nil {
		return vectors, nil
	}

	if !c.fallbackToLocal {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	// Sticky fallback: the remote path is not retried for this client.
	c.mode.Store(int32(ModeLocal))
	c.log.Warn("embedding", "Remote embedding failed, switching to local mode permanently", map[string]interface{}{
		"error":       err.Error(),
		"service_url": c.serviceURL,
	})
	return c.local.Encode(ctx, texts)
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (c *Client) encodeRemote(ctx context.Context, texts []string) ([][]float32, error) {
	jsonBody, err := json.Marshal(embedRequest{Texts: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL+"/embed", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embedding service returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed embedResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d texts", len(parsed.Embeddings), len(texts))
	}
	return parsed.Embeddings, nil
}

// put inserts under the cache lock. Reaching capacity evicts the oldest half
// in bulk; cheap and good enough for a query cache, no LRU bookkeeping.
func (c *Client) put(key string, vec []float32) {
	if _, exists := c.cache[key]; exists {
		c.cache[key] = vec
		return
	}

	if len(c.cache) >= c.capacity {
		drop := c.capacity / 2
		for _, old := range c.order[:drop] {
			delete(c.cache, old)
		}
		c.order = append(c.order[:0], c.order[drop:]...)
	}

	c.cache[key] = vec
	c.order = append(c.order, key)
}

// CacheSize returns the number of cached embeddings.
func (c *Client) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Warmup primes the active encoding path. In remote mode a failed warmup
// with fallback enabled flips the client to local immediately.
func (c *Client) Warmup(ctx context.Context) {
	if _, err := c.Encode(ctx, []string{"warmup query for embedding client"}, false); err != nil {
		c.log.Warn("embedding", "Embedding warmup failed", map[string]interface{}{"error": err.Error()})
		return
	}
	c.log.Info("embedding", "Embedding client warmed up", map[string]interface{}{"mode": c.Mode().String()})
}

// HealthStatus is the embedding client's health report.
type HealthStatus struct {
	Status            string `json:"status"`
	Mode              string `json:"mode"`
	ServiceURL        string `json:"service_url,omitempty"`
	ModelLoaded       bool   `json:"model_loaded"`
	ModelName         string `json:"model_name,omitempty"`
	Error             string `json:"error,omitempty"`
	FallbackAvailable bool   `json:"fallback_available,omitempty"`
	CacheEntries      int    `json:"cache_entries"`
}

type remoteHealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelName   string `json:"model_name"`
}

// HealthCheck reports the current mode and, in remote mode, the remote
// service's own health.
func (c *Client) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Mode:         c.Mode().String(),
		CacheEntries: c.CacheSize(),
	}

	if c.Mode() == ModeLocal {
		status.Status = "local"
		status.ModelLoaded = c.local.Loaded()
		status.ModelName = c.local.ModelName()
		return status
	}

	status.ServiceURL = c.serviceURL

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL+"/health", nil)
	if err != nil {
		status.Status = "error"
		status.Error = err.Error()
		status.FallbackAvailable = c.fallbackToLocal
		return status
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		status.Status = "error"
		status.Error = err.Error()
		status.FallbackAvailable = c.fallbackToLocal
		return status
	}
	defer resp.Body.Close()

	var parsed remoteHealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || resp.StatusCode != http.StatusOK {
		status.Status = "error"
		if err != nil {
			status.Error = err.Error()
		} else {
			status.Error = fmt.Sprintf("health endpoint returned %d", resp.StatusCode)
		}
		status.FallbackAvailable = c.fallbackToLocal
		return status
	}

	status.Status = parsed.Status
	status.ModelLoaded = parsed.ModelLoaded
	status.ModelName = parsed.ModelName
	return status
}

package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubProvider returns constant vectors and counts how many texts it encoded.
type stubProvider struct {
	encodedTexts int32
	failWith     error
}

func (s *stubProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	atomic.AddInt32(&s.encodedTexts, int32(len(texts)))
	out := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, Dim)
		vec[0] = 1.0
		out[i] = vec
	}
	return out, nil
}

func (s *stubProvider) Loaded() bool      { return true }
func (s *stubProvider) ModelName() string { return "stub" }

func newLocalClient(t *testing.T, provider *stubProvider, capacity int) *Client {
	t.Helper()
	return NewClient(Config{CacheCapacity: capacity}, provider, nopLogger{})
}

func TestEncode_CacheHitSkipsProvider(t *testing.T) {
	provider := &stubProvider{}
	client := newLocalClient(t, provider, 0)

	first, err := client.Encode(context.Background(), []string{"Jazz concert in Boston"}, true)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Len(t, first[0], Dim)

	// Same text modulo case and whitespace should be a cache hit.
	second, err := client.Encode(context.Background(), []string{"  jazz   concert in BOSTON "}, true)
	require.NoError(t, err)
	assert.Equal(t, first[0], second[0])

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.encodedTexts))
	assert.Equal(t, 1, client.CacheSize())
}

func TestEncode_NoCacheAlwaysEncodes(t *testing.T) {
	provider := &stubProvider{}
	client := newLocalClient(t, provider, 0)

	_, err := client.Encode(context.Background(), []string{"hello"}, false)
	require.NoError(t, err)
	_, err = client.Encode(context.Background(), []string{"hello"}, false)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.encodedTexts))
	assert.Equal(t, 0, client.CacheSize())
}

func TestEncode_CacheEvictsOldestHalf(t *testing.T) {
	provider := &stubProvider{}
	client := newLocalClient(t, provider, 4)

	texts := []string{"alpha", "bravo", "charlie", "delta"}
	for _, text := range texts {
		_, err := client.Encode(context.Background(), []string{text}, true)
		require.NoError(t, err)
	}
	require.Equal(t, 4, client.CacheSize())

	// Fifth insert triggers eviction of the two oldest entries.
	_, err := client.Encode(context.Background(), []string{"echo"}, true)
	require.NoError(t, err)
	assert.Equal(t, 3, client.CacheSize())

	before := atomic.LoadInt32(&provider.encodedTexts)
	_, err = client.Encode(context.Background(), []string{"alpha"}, true)
	require.NoError(t, err)
	assert.Equal(t, before+1, atomic.LoadInt32(&provider.encodedTexts), "evicted entry should re-encode")

	_, err = client.Encode(context.Background(), []string{"delta"}, true)
	require.NoError(t, err)
	assert.Equal(t, before+1, atomic.LoadInt32(&provider.encodedTexts), "recent entry should stay cached")
}

func TestEncode_RemoteSuccess(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := embedResponse{Embeddings: make([][]float32, len(req.Texts))}
		for i := range req.Texts {
			resp.Embeddings[i] = make([]float32, Dim)
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider := &stubProvider{}
	client := NewClient(Config{ServiceURL: server.URL, FallbackToLocal: true}, provider, nopLogger{})

	vectors, err := client.Encode(context.Background(), []string{"music", "theater"}, true)
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, ModeRemote, client.Mode())
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.Equal(t, int32(0), atomic.LoadInt32(&provider.encodedTexts))
}

func TestEncode_StickyFallbackOnRemoteFailure(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := &stubProvider{}
	client := NewClient(Config{ServiceURL: server.URL, FallbackToLocal: true}, provider, nopLogger{})
	require.Equal(t, ModeRemote, client.Mode())

	vectors, err := client.Encode(context.Background(), []string{"music festival"}, false)
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.Equal(t, ModeLocal, client.Mode())

	// Once local, the remote service is never contacted again.
	_, err = client.Encode(context.Background(), []string{"art show"}, false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.encodedTexts))
}

func TestEncode_FallbackDisabledPropagatesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := &stubProvider{}
	client := NewClient(Config{ServiceURL: server.URL, FallbackToLocal: false}, provider, nopLogger{})

	_, err := client.Encode(context.Background(), []string{"music festival"}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteUnavailable))
	assert.Equal(t, ModeRemote, client.Mode())
	assert.Equal(t, int32(0), atomic.LoadInt32(&provider.encodedTexts))
}

func TestEncode_LocalProviderErrorPropagates(t *testing.T) {
	provider := &stubProvider{failWith: errors.New("model not loaded")}
	client := newLocalClient(t, provider, 0)

	_, err := client.Encode(context.Background(), []string{"anything"}, true)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRemoteUnavailable))
}

func TestHealthCheck_LocalMode(t *testing.T) {
	provider := &stubProvider{}
	client := newLocalClient(t, provider, 0)

	status := client.HealthCheck(context.Background())
	assert.Equal(t, "local", status.Status)
	assert.Equal(t, "local", status.Mode)
	assert.True(t, status.ModelLoaded)
	assert.Equal(t, "stub", status.ModelName)
}

func TestHealthCheck_RemoteMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(remoteHealthResponse{Status: "healthy", ModelLoaded: true, ModelName: "all-MiniLM-L6-v2"})
	}))
	defer server.Close()

	client := NewClient(Config{ServiceURL: server.URL}, &stubProvider{}, nopLogger{})
	status := client.HealthCheck(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "remote", status.Mode)
	assert.True(t, status.ModelLoaded)
	assert.Equal(t, "all-MiniLM-L6-v2", status.ModelName)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "jazz in boston", normalizeKey("  Jazz   IN\tBoston "))
	assert.Equal(t, normalizeKey("music tonight"), normalizeKey("MUSIC  tonight"))
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader_test.go
Description: Tests for corpus sources, table caches and the loader. HTTP corpora are served
by httptest and the Redis cache runs against miniredis.
*/

package frequency_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kleascm/cryptkit/pkg/frequency"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// countingCache records Put calls on top of a file cache
type countingCache struct {
	*frequency.FileCache
	puts int
}

func (c *countingCache) Put(ctx context.Context, key string, table *frequency.Table) error {
	c.puts++
	return c.FileCache.Put(ctx, key, table)
}

// TestCacheKey tests that the key ignores location order
func TestCacheKey(t *testing.T) {
	a := frequency.CacheKey([]string{"one", "two"})
	b := frequency.CacheKey([]string{"two", "one"})
	c := frequency.CacheKey([]string{"one", "three"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

// TestFileCache tests storing and loading through the directory cache
func TestFileCache(t *testing.T) {
	ctx := context.Background()
	cache := frequency.NewFileCache(filepath.Join(t.TempDir(), "cache"))

	_, err := cache.Get(ctx, "missing")
	assert.True(t, errors.Is(err, frequency.ErrCacheMiss))

	require.NoError(t, cache.Put(ctx, "k", frequency.English()))
	table, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, frequency.English().Weights(), table.Weights())
}

// TestFileCachePutFailure tests that a failed replace is reported and leaves no temp file
func TestFileCachePutFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "freq_k.json")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "sub"), 0755))

	err := frequency.NewFileCache(dir).Put(context.Background(), "k", frequency.English())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace cached table")

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

// TestRedisCache tests storing, loading and expiry through Redis
func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	cache := frequency.NewRedisCache(client, "test:freq", time.Minute)

	_, err := cache.Get(ctx, "k")
	assert.True(t, errors.Is(err, frequency.ErrCacheMiss))

	require.NoError(t, cache.Put(ctx, "k", frequency.English()))
	assert.True(t, mr.Exists("test:freq:k"))

	table, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, frequency.English().Weight('e'), table.Weight('e'))

	mr.FastForward(2 * time.Minute)
	_, err = cache.Get(ctx, "k")
	assert.True(t, errors.Is(err, frequency.ErrCacheMiss))
}

// TestHTTPSourceHTML tests that HTML corpora are reduced to visible text
func TestHTTPSourceHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><style>zzz{}</style></head><body><p>ab</p><script>qqq</script></body></html>`)
	}))
	defer srv.Close()

	rc, err := frequency.NewSource(srv.URL, 5*time.Second).Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "ab", strings.TrimSpace(string(data)))
}

// TestHTTPSourceStatus tests that non-200 responses fail
func TestHTTPSourceStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := frequency.NewHTTPSource(srv.URL, time.Second).Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

// TestLoaderBuildsAndCaches tests the miss-then-hit cycle
func TestLoaderBuildsAndCaches(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	corpus := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(corpus, []byte("eeee tt"), 0644))

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "  x")
	}))
	defer srv.Close()

	cache := &countingCache{FileCache: frequency.NewFileCache(filepath.Join(dir, "cache"))}
	loader := frequency.NewLoader([]string{corpus, srv.URL}, 5*time.Second, cache, quietLogger())

	table, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, table.Weight('e'), 1e-9)
	assert.InDelta(t, 0.4, table.Weight('E'), 1e-9)
	assert.InDelta(t, 0.3, table.Weight(' '), 1e-9)
	assert.InDelta(t, 0.2, table.Weight('t'), 1e-9)
	assert.InDelta(t, 0.1, table.Weight('x'), 1e-9)
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, int32(1), hits.Load())

	again, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.Weights(), again.Weights())
	assert.Equal(t, 1, cache.puts, "second load is served from cache")
	assert.Equal(t, int32(1), hits.Load())
}

// TestLoaderWithoutCache tests loading from a single xz-free file with no cache
func TestLoaderWithoutCache(t *testing.T) {
	corpus := filepath.Join(t.TempDir(), "c.txt")
	require.NoError(t, os.WriteFile(corpus, []byte("ab"), 0644))

	loader := frequency.NewLoader([]string{corpus}, time.Second, nil, quietLogger())
	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, table.Weight('b'), 1e-9)
}

// trackedSource serves fixed text and records its open and close events
type trackedSource struct {
	name   string
	text   string
	events *[]string
}

func (ts *trackedSource) Name() string { return ts.name }

func (ts *trackedSource) Open(ctx context.Context) (io.ReadCloser, error) {
	*ts.events = append(*ts.events, "open "+ts.name)
	return &trackedBody{Reader: strings.NewReader(ts.text), source: ts}, nil
}

type trackedBody struct {
	*strings.Reader
	source *trackedSource
}

func (tb *trackedBody) Close() error {
	*tb.source.events = append(*tb.source.events, "close "+tb.source.name)
	return nil
}

// TestLoaderReadsSourcesInTurn tests that each source is opened only after the previous one is closed
func TestLoaderReadsSourcesInTurn(t *testing.T) {
	var events []string
	loader := &frequency.Loader{
		Sources: []frequency.CorpusSource{
			&trackedSource{name: "a", text: "eeee", events: &events},
			&trackedSource{name: "b", text: "", events: &events},
			&trackedSource{name: "c", text: " tt  x", events: &events},
		},
		Logger: quietLogger(),
	}

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"open a", "close a", "open b", "close b", "open c", "close c"}, events)
	assert.InDelta(t, 0.4, table.Weight('e'), 1e-9)
	assert.InDelta(t, 0.3, table.Weight(' '), 1e-9)
}

// TestLoaderErrors tests missing sources and empty configuration
func TestLoaderErrors(t *testing.T) {
	_, err := (&frequency.Loader{}).Load(context.Background())
	assert.Error(t, err)

	loader := frequency.NewLoader([]string{filepath.Join(t.TempDir(), "missing.txt")}, time.Second, nil, quietLogger())
	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open corpus")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

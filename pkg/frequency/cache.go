/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cache.go
Description: Caches for built frequency tables so a corpus is downloaded and counted once.
Provides a directory-backed JSON cache and a Redis cache, both keyed by a BLAKE3 digest of
the corpus locations.
*/

package frequency

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"
)

// ErrCacheMiss is returned by a Cache that holds no table for a key
var ErrCacheMiss = errors.New("frequency table not cached")

// Cache stores built tables by key
type Cache interface {
	Get(ctx context.Context, key string) (*Table, error)
	Put(ctx context.Context, key string, table *Table) error
}

// CacheKey derives a stable key from corpus locations, independent of their order
func CacheKey(locations []string) string {
	sorted := append([]string(nil), locations...)
	sort.Strings(sorted)
	sum := blake3.Sum256([]byte(strings.Join(sorted, "\n")))
	return hex.EncodeToString(sum[:])
}

// FileCache keeps one JSON file per key in a directory
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir
func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

func (fc *FileCache) path(key string) string {
	return filepath.Join(fc.dir, "freq_"+key+".json")
}

// Get loads the table stored under key
func (fc *FileCache) Get(ctx context.Context, key string) (*Table, error) {
	data, err := os.ReadFile(fc.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached table: %w", err)
	}

	table := &Table{}
	if err := json.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to decode cached table: %w", err)
	}
	return table, nil
}

// Put writes the table under key, creating the directory when needed
func (fc *FileCache) Put(ctx context.Context, key string, table *Table) error {
	if err := os.MkdirAll(fc.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(table, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	tmp := fc.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write cached table: %w", err)
	}
	if err := os.Rename(tmp, fc.path(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace cached table: %w", err)
	}
	return nil
}

// RedisCache stores tables as JSON strings in Redis
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a Redis cache. A zero ttl keeps entries forever.
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "cryptkit:freq"
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (rc *RedisCache) key(key string) string {
	return rc.prefix + ":" + key
}

// Get loads the table stored under key
func (rc *RedisCache) Get(ctx context.Context, key string) (*Table, error) {
	data, err := rc.client.Get(ctx, rc.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached table: %w", err)
	}

	table := &Table{}
	if err := json.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to decode cached table: %w", err)
	}
	return table, nil
}

// Put stores the table under key
func (rc *RedisCache) Put(ctx context.Context, key string, table *Table) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	if err := rc.client.Set(ctx, rc.key(key), data, rc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store table: %w", err)
	}
	return nil
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader.go
Description: Loads the frequency table once per process. Serves cached tables when
available, otherwise reads every corpus source, builds the table and stores it back.
*/

package frequency

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Loader resolves a table from corpus sources with an optional cache
type Loader struct {
	Sources []CorpusSource
	Cache   Cache          // optional
	Key     string         // cache key, defaults to CacheKey of the source names
	Logger  *logrus.Logger // optional
}

// NewLoader creates a loader for the given corpus locations
func NewLoader(locations []string, timeout time.Duration, cache Cache, logger *logrus.Logger) *Loader {
	sources := make([]CorpusSource, 0, len(locations))
	for _, loc := range locations {
		sources = append(sources, NewSource(loc, timeout))
	}
	return &Loader{
		Sources: sources,
		Cache:   cache,
		Key:     CacheKey(locations),
		Logger:  logger,
	}
}

func (l *Loader) logger() *logrus.Logger {
	if l.Logger == nil {
		return logrus.StandardLogger()
	}
	return l.Logger
}

func (l *Loader) cacheKey() string {
	if l.Key != "" {
		return l.Key
	}
	names := make([]string, len(l.Sources))
	for i, src := range l.Sources {
		names[i] = src.Name()
	}
	return CacheKey(names)
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}

// Load returns the cached table or builds it from the sources.
// Cache read and write failures are logged and never fail the load.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	if len(l.Sources) == 0 {
		return nil, fmt.Errorf("no corpus sources configured")
	}

	key := l.cacheKey()
	log := l.logger().WithField("cache_key", shortKey(key))

	if l.Cache != nil {
		table, err := l.Cache.Get(ctx, key)
		switch {
		case err == nil:
			log.Debug("Frequency table served from cache")
			return table, nil
		case errors.Is(err, ErrCacheMiss):
			log.Debug("Frequency table cache miss")
		default:
			log.WithError(err).Warn("Frequency table cache unavailable")
		}
	}

	start := time.Now()
	table, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"sources":  len(l.Sources),
		"duration": time.Since(start),
	}).Info("Frequency table built from corpus")

	if l.Cache != nil {
		if err := l.Cache.Put(ctx, key, table); err != nil {
			log.WithError(err).Warn("Failed to cache frequency table")
		}
	}
	return table, nil
}

func (l *Loader) build(ctx context.Context) (*Table, error) {
	corpus := &sequentialReader{ctx: ctx, sources: l.Sources}
	defer corpus.Close()

	table, err := Build(corpus)
	if err != nil {
		return nil, fmt.Errorf("failed to build frequency table: %w", err)
	}
	return table, nil
}

// sequentialReader concatenates sources, opening each one only after the
// previous one is exhausted and closed. HTTP client timeouts include the body
// read, so a source must not sit open while earlier ones are counted.
type sequentialReader struct {
	ctx     context.Context
	sources []CorpusSource
	current io.ReadCloser
}

func (s *sequentialReader) Read(p []byte) (int, error) {
	for {
		if s.current == nil {
			if len(s.sources) == 0 {
				return 0, io.EOF
			}
			src := s.sources[0]
			s.sources = s.sources[1:]
			rc, err := src.Open(s.ctx)
			if err != nil {
				return 0, fmt.Errorf("failed to open corpus %s: %w", src.Name(), err)
			}
			s.current = rc
		}

		n, err := s.current.Read(p)
		if err == io.EOF {
			if cerr := s.Close(); cerr != nil {
				return n, cerr
			}
			if n == 0 {
				continue
			}
			return n, nil
		}
		return n, err
	}
}

// Close releases the source being read, if any
func (s *sequentialReader) Close() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the cryptkit commands. Provides configuration loading,
logging setup, frequency table resolution and result output used across all command
implementations.
*/

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/kleascm/cryptkit/pkg/config"
	"github.com/kleascm/cryptkit/pkg/frequency"
	"github.com/kleascm/cryptkit/pkg/logging"
	"github.com/kleascm/cryptkit/pkg/report"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// session holds everything a command needs for one invocation
type session struct {
	cfg    *config.Config
	logger *logging.Logger
	out    io.Writer
}

// bindFlags binds command-local flags to config keys. Several commands share
// keys such as codec.input, so binding happens when the command runs.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// SetupLogging creates the logger described by cfg, writing console output to w
func SetupLogging(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	logCfg := cfg.Log
	logCfg.Console = w
	logger, err := logging.NewLogger(&logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// newSession binds flags, loads config and starts logging for cmd
func newSession(v *viper.Viper, cmd *cobra.Command, keys map[string]string) (*session, error) {
	if err := bindFlags(v, cmd.Flags(), keys); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	logger, err := SetupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, out: cmd.OutOrStdout()}, nil
}

func (s *session) Close() error {
	return s.logger.Close()
}

// loadTable resolves the frequency table: the configured corpus sources when set,
// otherwise the built-in English table
func (s *session) loadTable(ctx context.Context) (*frequency.Table, string, error) {
	sources := s.cfg.Frequency.Sources
	if len(sources) == 0 {
		return frequency.English(), "builtin", nil
	}

	cache, closeCache := s.tableCache()
	defer closeCache()

	loader := frequency.NewLoader(sources, s.cfg.Frequency.Timeout, cache, s.logger.GetLogger())
	table, err := loader.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load frequency table: %w", err)
	}
	return table, "corpus", nil
}

// tableCache picks Redis when an address is configured, then a cache directory
func (s *session) tableCache() (frequency.Cache, func()) {
	fc := s.cfg.Frequency
	if fc.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     fc.Redis.Addr,
			Password: fc.Redis.Password,
			DB:       fc.Redis.DB,
		})
		return frequency.NewRedisCache(client, fc.Redis.Prefix, fc.Redis.TTL), func() { client.Close() }
	}
	if fc.CacheDir != "" {
		return frequency.NewFileCache(fc.CacheDir), func() {}
	}
	return nil, func() {}
}

// writeResult stores v under the output directory when one is configured
func (s *session) writeResult(kind string, v interface{}) error {
	if s.cfg.OutputDir == "" {
		return nil
	}
	path, err := report.WriteResult(s.cfg.OutputDir, kind, v)
	if err != nil {
		return err
	}
	s.logger.Info("Result written", map[string]interface{}{
		"kind": kind,
		"path": path,
	})
	return nil
}

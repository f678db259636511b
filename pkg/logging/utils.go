/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Log file retention for cryptkit. Prunes old timestamped log files and reports
simple statistics about the log directory.
*/

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const logFilePattern = "cryptkit_*.log"

// LogManager applies a retention policy to a log directory
type LogManager struct {
	logDir   string
	maxFiles int
}

// NewLogManager creates a new log manager keeping at most maxFiles log files
func NewLogManager(logDir string, maxFiles int) *LogManager {
	return &LogManager{
		logDir:   logDir,
		maxFiles: maxFiles,
	}
}

// CleanupOldLogs removes the oldest log files beyond the retention limit.
// It returns the number of files removed.
func (lm *LogManager) CleanupOldLogs() (int, error) {
	if lm.maxFiles <= 0 {
		return 0, nil
	}

	files, err := filepath.Glob(filepath.Join(lm.logDir, logFilePattern))
	if err != nil {
		return 0, fmt.Errorf("failed to glob log files: %w", err)
	}
	if len(files) <= lm.maxFiles {
		return 0, nil
	}

	// oldest first; names carry the timestamp so they break mtime ties
	sort.Slice(files, func(i, j int) bool {
		statI, errI := os.Stat(files[i])
		statJ, errJ := os.Stat(files[j])
		if errI != nil || errJ != nil || statI.ModTime().Equal(statJ.ModTime()) {
			return files[i] < files[j]
		}
		return statI.ModTime().Before(statJ.ModTime())
	})

	toRemove := len(files) - lm.maxFiles
	for i := 0; i < toRemove; i++ {
		if err := os.Remove(files[i]); err != nil {
			return i, fmt.Errorf("failed to remove file %s: %w", files[i], err)
		}
	}
	return toRemove, nil
}

// LogStats holds statistics about log files
type LogStats struct {
	TotalFiles int       `json:"total_files"`
	TotalSize  int64     `json:"total_size"`
	OldestFile time.Time `json:"oldest_file"`
	NewestFile time.Time `json:"newest_file"`
}

// GetLogStats returns statistics about log files
func (lm *LogManager) GetLogStats() (*LogStats, error) {
	files, err := filepath.Glob(filepath.Join(lm.logDir, logFilePattern))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}

	stats := &LogStats{TotalFiles: len(files)}
	for _, file := range files {
		stat, err := os.Stat(file)
		if err != nil {
			continue
		}
		stats.TotalSize += stat.Size()
		if stats.OldestFile.IsZero() || stat.ModTime().Before(stats.OldestFile) {
			stats.OldestFile = stat.ModTime()
		}
		if stat.ModTime().After(stats.NewestFile) {
			stats.NewestFile = stat.ModTime()
		}
	}

	return stats, nil
}

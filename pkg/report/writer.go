/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: writer.go
Description: Writes command results as JSON. Results go to stdout pretty-printed or to
timestamped files under an output directory, grouped by result kind.
*/

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Version is stamped into every written result
const Version = "1.0.0"

// Envelope wraps a result with run metadata
type Envelope struct {
	RunID     string      `json:"run_id"`
	Kind      string      `json:"kind"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Result    interface{} `json:"result"`
}

// NewEnvelope wraps result under a fresh run id
func NewEnvelope(kind string, result interface{}) *Envelope {
	return &Envelope{
		RunID:     uuid.New().String(),
		Kind:      kind,
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Result:    result,
	}
}

// PrintJSON writes v as JSON indented by four spaces
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteResult writes result to <dir>/<kind>/<timestamp>_<kind>_<runid>.json
// and returns the file path
func WriteResult(dir, kind string, result interface{}) (string, error) {
	resultDir := filepath.Join(dir, kind)
	if err := os.MkdirAll(resultDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	env := NewEnvelope(kind, result)
	filename := fmt.Sprintf("%s_%s_%s.json", env.Timestamp.Format("2006-01-02_15-04-05"), kind, env.RunID[:8])
	path := filepath.Join(resultDir, filename)

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}

	return path, nil
}

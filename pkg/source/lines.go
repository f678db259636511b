/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lines.go
Description: Line sources feed ciphertext candidates to multi-buffer detection. Each
non-blank line of a file is decoded through the codec into one independent buffer.
*/

package source

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/kleascm/cryptkit/pkg/codec"
)

// LineSource supplies an ordered sequence of raw byte buffers
type LineSource interface {
	Lines(ctx context.Context) ([][]byte, error)
}

// FileLines reads one encoded buffer per line from a file
type FileLines struct {
	Path string               // File path, .xz files are decompressed
	Repr codec.Representation // Encoding of every line
}

// NewFileLines creates a line source for path with lines in repr
func NewFileLines(path string, repr codec.Representation) *FileLines {
	return &FileLines{Path: path, Repr: repr}
}

// Lines reads and decodes every non-blank line, surrounding whitespace removed.
// A malformed line fails the whole read with its 1-based line number.
func (f *FileLines) Lines(ctx context.Context) ([][]byte, error) {
	rc, err := Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buffers [][]byte
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		buf, err := codec.Decode(f.Repr, line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", f.Path, lineNo, err)
		}
		buffers = append(buffers, buf)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}

	return buffers, nil
}

// StaticLines is an in-memory line source
type StaticLines [][]byte

// Lines returns the buffers as given
func (s StaticLines) Lines(ctx context.Context) ([][]byte, error) {
	return [][]byte(s), nil
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lines_test.go
Description: Tests for the file opener and line sources, including xz-compressed input
and line-numbered decode failures.
*/

package source_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/cryptkit/pkg/codec"
	"github.com/kleascm/cryptkit/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// TestFileLinesHex tests decoding of hex lines with blanks and surrounding whitespace
func TestFileLinesHex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.txt")
	require.NoError(t, os.WriteFile(path, []byte("4869\n\n  00ff  \r\n7a\n"), 0644))

	lines, err := source.NewFileLines(path, codec.Hex).Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x48, 0x69}, {0x00, 0xff}, {0x7a}}, lines)
}

// TestFileLinesMalformed tests that a bad line reports its number and a FormatError
func TestFileLinesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("4869\nabc\n"), 0644))

	_, err := source.NewFileLines(path, codec.Hex).Lines(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt:2")
	assert.True(t, errors.Is(err, codec.ErrFormat))
}

// TestFileLinesMissing tests that a missing file is an error
func TestFileLinesMissing(t *testing.T) {
	_, err := source.NewFileLines(filepath.Join(t.TempDir(), "nope.txt"), codec.Hex).Lines(context.Background())
	assert.Error(t, err)
}

// TestOpenXZ tests transparent decompression of .xz files
func TestOpenXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.txt.xz")
	file, err := os.Create(path)
	require.NoError(t, err)
	w, err := xz.NewWriter(file)
	require.NoError(t, err)
	_, err = w.Write([]byte("SGk=\nAA==\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, file.Close())

	rc, err := source.Open(path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "SGk=\nAA==\n", string(data))

	lines, err := source.NewFileLines(path, codec.Base64).Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("Hi"), {0x00}}, lines)
}

// TestStaticLines tests the in-memory source
func TestStaticLines(t *testing.T) {
	src := source.StaticLines{[]byte("a"), []byte("b")}
	lines, err := src.Lines(context.Background())
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

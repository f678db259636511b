/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: build.go
Description: Builds a frequency table from a text corpus. Counts ASCII bytes after
lowercasing, ignores everything else, and normalises counts into relative weights.
*/

package frequency

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyCorpus is returned when a corpus contains no ASCII bytes
var ErrEmptyCorpus = errors.New("corpus contains no ascii text")

// Build counts the ASCII bytes read from r and returns their relative frequencies.
// Letters are counted case-insensitively; the uppercase weights come from case-folding.
func Build(r io.Reader) (*Table, error) {
	var counts [128]uint64
	var total uint64

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus: %w", err)
		}
		if b >= 128 {
			continue
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		counts[b]++
		total++
	}

	if total == 0 {
		return nil, ErrEmptyCorpus
	}

	weights := make(map[byte]float64)
	for b, n := range counts {
		if n > 0 {
			weights[byte(b)] = float64(n) / float64(total)
		}
	}
	return NewTable(weights)
}

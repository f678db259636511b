/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: Immutable byte frequency table used to score candidate plaintexts. Maps every
byte value to a non-negative relative weight, with uppercase letters inheriting the weight
of their lowercase counterpart when only the lowercase weight is known.
*/

package frequency

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Table is a read-only mapping from byte value to relative weight.
// Bytes that were never given a weight score 0.
type Table struct {
	weights [256]float64
}

// NewTable builds a table from explicit weights.
// Negative, NaN and infinite weights are rejected.
func NewTable(weights map[byte]float64) (*Table, error) {
	t := &Table{}
	for b, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("invalid weight %v for byte 0x%02x", w, b)
		}
		t.weights[b] = w
	}

	for c := byte('a'); c <= 'z'; c++ {
		upper := c - 'a' + 'A'
		if _, known := weights[upper]; !known {
			t.weights[upper] = t.weights[c]
		}
	}

	return t, nil
}

// Weight returns the weight of b
func (t *Table) Weight(b byte) float64 {
	return t.weights[b]
}

// Weights returns a copy of every non-zero weight
func (t *Table) Weights() map[byte]float64 {
	out := make(map[byte]float64)
	for b, w := range t.weights {
		if w != 0 {
			out[byte(b)] = w
		}
	}
	return out
}

// Total returns the sum of all weights. It may exceed 1 after case-folding.
func (t *Table) Total() float64 {
	var sum float64
	for _, w := range t.weights {
		sum += w
	}
	return sum
}

// Entry is one byte and its weight
type Entry struct {
	Byte   byte    `json:"byte"`
	Weight float64 `json:"weight"`
}

// Ranked returns the non-zero entries by weight descending, then byte ascending
func (t *Table) Ranked() []Entry {
	var entries []Entry
	for b, w := range t.weights {
		if w != 0 {
			entries = append(entries, Entry{Byte: byte(b), Weight: w})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Weight > entries[j].Weight
	})
	return entries
}

// MarshalJSON encodes the table as an object keyed by two-digit lowercase hex
func (t *Table) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64)
	for b, w := range t.weights {
		if w != 0 {
			out[fmt.Sprintf("%02x", b)] = w
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the hex-keyed object written by MarshalJSON.
// Case-folding applies as in NewTable.
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	weights := make(map[byte]float64, len(raw))
	for key, w := range raw {
		b, err := strconv.ParseUint(key, 16, 8)
		if err != nil {
			return fmt.Errorf("invalid table key %q: %w", key, err)
		}
		weights[byte(b)] = w
	}

	parsed, err := NewTable(weights)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

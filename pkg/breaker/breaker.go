/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: breaker.go
Description: Single-byte XOR breaker. Tries every one of the 256 possible key bytes against
a ciphertext, scores each decryption with a frequency table and returns the full ranking.
Ordering is deterministic: score descending, then key ascending.
*/

package breaker

import (
	"sort"

	"github.com/kleascm/cryptkit/pkg/codec"
	"github.com/sourcegraph/conc/iter"
)

// KeySpace is the number of candidate single-byte keys
const KeySpace = 256

// Scorer assigns a plausibility weight to a plaintext byte
type Scorer interface {
	Weight(b byte) float64
}

// Candidate is one key together with its score and decryption
type Candidate struct {
	Key       byte    `json:"key"`
	Score     float64 `json:"score"`
	Plaintext []byte  `json:"plaintext"`
}

// Option configures a Breaker
type Option func(*Breaker)

// WithWorkers spreads the key scan over n goroutines. n <= 1 scans sequentially.
func WithWorkers(n int) Option {
	return func(b *Breaker) {
		b.workers = n
	}
}

// Breaker ranks single-byte XOR keys using an injected scorer.
// It holds no mutable state and is safe for concurrent use.
type Breaker struct {
	scorer  Scorer
	workers int
}

// New creates a breaker that scores plaintexts with scorer
func New(scorer Scorer, opts ...Option) *Breaker {
	b := &Breaker{scorer: scorer, workers: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Break evaluates all 256 keys against ciphertext and returns them ranked.
// An empty ciphertext yields 256 zero-score candidates in key order.
func (b *Breaker) Break(ciphertext []byte) RankedResult {
	result := make(RankedResult, KeySpace)

	if b.workers > 1 {
		iter.Iterator[Candidate]{MaxGoroutines: b.workers}.ForEachIdx(result, func(k int, c *Candidate) {
			*c = b.try(ciphertext, byte(k))
		})
	} else {
		for k := range result {
			result[k] = b.try(ciphertext, byte(k))
		}
	}

	result.sort()
	return result
}

// BreakEncoded decodes text in repr and breaks the resulting ciphertext.
// It only fails when the text is malformed.
func (b *Breaker) BreakEncoded(text string, repr codec.Representation) (RankedResult, error) {
	ciphertext, err := codec.Decode(repr, text)
	if err != nil {
		return nil, err
	}
	return b.Break(ciphertext), nil
}

// Score sums the scorer weights of every byte in plaintext
func (b *Breaker) Score(plaintext []byte) float64 {
	var score float64
	for _, p := range plaintext {
		score += b.scorer.Weight(p)
	}
	return score
}

func (b *Breaker) try(ciphertext []byte, key byte) Candidate {
	plain := codec.XORByte(ciphertext, key)
	return Candidate{Key: key, Score: b.Score(plain), Plaintext: plain}
}

// RankedResult is a list of candidates ordered by score descending, key ascending
type RankedResult []Candidate

func (r RankedResult) sort() {
	sort.Slice(r, func(i, j int) bool {
		if r[i].Score != r[j].Score {
			return r[i].Score > r[j].Score
		}
		return r[i].Key < r[j].Key
	})
}

// Best returns the top candidate. ok is false for an empty result.
func (r RankedResult) Best() (Candidate, bool) {
	if len(r) == 0 {
		return Candidate{}, false
	}
	return r[0], true
}

// Top returns at most n leading candidates; n <= 0 returns everything
func (r RankedResult) Top(n int) RankedResult {
	if n <= 0 || n >= len(r) {
		return r
	}
	return r[:n]
}

// Filter keeps the candidates whose key passes keep, preserving order
func (r RankedResult) Filter(keep KeyFilter) RankedResult {
	if keep == nil {
		return r
	}
	out := make(RankedResult, 0, len(r))
	for _, c := range r {
		if keep(c.Key) {
			out = append(out, c)
		}
	}
	return out
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detect.go
Description: Multi-buffer detection. Breaks every buffer independently and selects the
buffer and key with the highest score overall.
*/

package breaker

import (
	"errors"

	"github.com/sourcegraph/conc/iter"
)

// ErrNoCiphertexts is returned when detection is given no buffers
var ErrNoCiphertexts = errors.New("no ciphertexts to search")

// Detection is the best candidate of one buffer together with the buffer's position
type Detection struct {
	Index int `json:"index"`
	Candidate
}

// Scan breaks every buffer and returns each buffer's best candidate in input order
func (b *Breaker) Scan(buffers [][]byte) []Detection {
	detections := make([]Detection, len(buffers))

	// parallelism goes to the buffers, each break runs sequentially
	inner := &Breaker{scorer: b.scorer, workers: 1}
	scan := func(i int, d *Detection) {
		best, _ := inner.Break(buffers[i]).Best()
		*d = Detection{Index: i, Candidate: best}
	}

	if b.workers > 1 {
		iter.Iterator[Detection]{MaxGoroutines: b.workers}.ForEachIdx(detections, scan)
	} else {
		for i := range detections {
			scan(i, &detections[i])
		}
	}
	return detections
}

// Detect returns the buffer/key pair with the highest score across all buffers.
// Ties go to the earliest buffer, then the lowest key.
func (b *Breaker) Detect(buffers [][]byte) (Detection, error) {
	if len(buffers) == 0 {
		return Detection{}, ErrNoCiphertexts
	}

	detections := b.Scan(buffers)
	best := detections[0]
	for _, d := range detections[1:] {
		if d.Score > best.Score {
			best = d
		}
	}
	return best, nil
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: render.go
Description: Human-readable rendering of break results. Plaintexts are shown with
non-printable bytes masked so that binary garbage never reaches the terminal.
*/

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kleascm/cryptkit/pkg/breaker"
)

// Printable masks every byte outside 0x20..0x7e with '.'
func Printable(buf []byte) string {
	var sb strings.Builder
	sb.Grow(len(buf))
	for _, b := range buf {
		if 0x20 <= b && b <= 0x7e {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// keyGlyph renders a key byte with the same masking as Printable
func keyGlyph(key byte) string {
	return Printable([]byte{key})
}

// WriteRanking prints up to limit candidates as an aligned table; limit <= 0 prints all
func WriteRanking(w io.Writer, result breaker.RankedResult, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ASCII\tHEX\tVALUE\tPLAINTEXT")
	for _, c := range result.Top(limit) {
		fmt.Fprintf(tw, "%s\t%02x\t%.8f\t%s\n", keyGlyph(c.Key), c.Key, c.Score, Printable(c.Plaintext))
	}
	return tw.Flush()
}

// WriteDetection prints the winning line of a detection
func WriteDetection(w io.Writer, d breaker.Detection) error {
	_, err := fmt.Fprintf(w, "line %d: key %02x (%s) score %.8f: %s\n",
		d.Index+1, d.Key, keyGlyph(d.Key), d.Score, Printable(d.Plaintext))
	return err
}

// CandidateView is the JSON form of a candidate with a readable plaintext
type CandidateView struct {
	Key       string  `json:"key"`
	Score     float64 `json:"score"`
	Plaintext string  `json:"plaintext"`
	Hex       string  `json:"hex"`
}

// NewCandidateView renders a candidate for JSON output
func NewCandidateView(c breaker.Candidate) CandidateView {
	return CandidateView{
		Key:       fmt.Sprintf("%02x", c.Key),
		Score:     c.Score,
		Plaintext: Printable(c.Plaintext),
		Hex:       fmt.Sprintf("%x", c.Plaintext),
	}
}

// Views renders every candidate of result, limited as in WriteRanking
func Views(result breaker.RankedResult, limit int) []CandidateView {
	top := result.Top(limit)
	views := make([]CandidateView, len(top))
	for i, c := range top {
		views[i] = NewCandidateView(c)
	}
	return views
}

// DetectionView is the JSON form of a detection; Line is 1-based
type DetectionView struct {
	Line int `json:"line"`
	CandidateView
}

// NewDetectionView renders a detection for JSON output
func NewDetectionView(d breaker.Detection) DetectionView {
	return DetectionView{Line: d.Index + 1, CandidateView: NewCandidateView(d.Candidate)}
}

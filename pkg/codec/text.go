/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: text.go
Description: UTF-8 text representation with caller-selected handling of ill-formed
input: strict rejection, replacement with U+FFFD, or dropping the offending bytes.
*/

package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// ErrorPolicy selects how EncodeText treats bytes that are not valid UTF-8
type ErrorPolicy string

const (
	Strict  ErrorPolicy = "strict"
	Replace ErrorPolicy = "replace"
	Ignore  ErrorPolicy = "ignore"
)

// ParseErrorPolicy resolves a policy by name
func ParseErrorPolicy(name string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case Strict, Replace, Ignore:
		return p, nil
	case "":
		return Strict, nil
	default:
		return "", fmt.Errorf("unknown text error policy: %q", name)
	}
}

// EncodeText renders buf as UTF-8 text under the given policy
func EncodeText(buf []byte, policy ErrorPolicy) (string, error) {
	bad := firstInvalid(buf)
	if bad < 0 {
		return string(buf), nil
	}

	switch policy {
	case Strict, "":
		return "", &EncodingError{Offset: bad}
	case Replace:
		out, _, err := transform.Bytes(subpartReplacer{}, buf)
		if err != nil {
			return "", fmt.Errorf("failed to replace ill-formed utf-8: %w", err)
		}
		return string(out), nil
	case Ignore:
		return dropInvalid(buf), nil
	default:
		return "", fmt.Errorf("unknown text error policy: %q", string(policy))
	}
}

var replacementChar = []byte("\uFFFD")

// subpartReplacer writes one U+FFFD per maximal ill-formed subpart, so a
// truncated multi-byte sequence collapses into a single replacement
type subpartReplacer struct{ transform.NopResetter }

func (subpartReplacer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		out := src[nSrc : nSrc+size]
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			size = illFormedPrefix(src[nSrc:])
			out = replacementChar
		}
		if nDst+len(out) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += size
	}
	return nDst, nSrc, nil
}

// illFormedPrefix returns the length of the maximal ill-formed subpart at the
// start of buf, which must not begin with a well-formed sequence
func illFormedPrefix(buf []byte) int {
	lo, hi := byte(0x80), byte(0xbf)
	var need int
	switch b := buf[0]; {
	case 0xc2 <= b && b <= 0xdf:
		need = 1
	case b == 0xe0:
		need, lo = 2, 0xa0
	case b == 0xed:
		need, hi = 2, 0x9f
	case 0xe1 <= b && b <= 0xef:
		need = 2
	case b == 0xf0:
		need, lo = 3, 0x90
	case b == 0xf4:
		need, hi = 3, 0x8f
	case 0xf1 <= b && b <= 0xf3:
		need = 3
	default:
		return 1
	}

	n := 1
	for n <= need && n < len(buf) && lo <= buf[n] && buf[n] <= hi {
		n++
		lo, hi = 0x80, 0xbf
	}
	return n
}

func decodeText(text string) ([]byte, error) {
	if bad := firstInvalid([]byte(text)); bad >= 0 {
		return nil, formatErr(Text, bad, "ill-formed utf-8 sequence")
	}
	return []byte(text), nil
}

// firstInvalid returns the offset of the first ill-formed byte, or -1
func firstInvalid(buf []byte) int {
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

func dropInvalid(buf []byte) string {
	var sb strings.Builder
	sb.Grow(len(buf))
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if !(r == utf8.RuneError && size == 1) {
			sb.Write(buf[i : i+size])
		}
		i += size
	}
	return sb.String()
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: codec.go
Description: Multi-base codec for the cryptkit toolkit. Converts byte buffers to and from
hexadecimal, binary digits, octal, decimal, Base64 and UTF-8 text. Every conversion is a
pure function: inputs are never modified and results are freshly allocated.
*/

package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Representation identifies one of the textual encodings of a byte buffer
type Representation int

const (
	Hex Representation = iota
	Bits
	Octal
	Decimal
	Base64
	Text
)

var representationNames = map[Representation]string{
	Hex:     "hex",
	Bits:    "bits",
	Octal:   "octal",
	Decimal: "decimal",
	Base64:  "base64",
	Text:    "text",
}

var representationAliases = map[string]Representation{
	"hex":     Hex,
	"bits":    Bits,
	"bin":     Bits,
	"binary":  Bits,
	"octal":   Octal,
	"oct":     Octal,
	"decimal": Decimal,
	"dec":     Decimal,
	"base64":  Base64,
	"b64":     Base64,
	"text":    Text,
	"str":     Text,
	"ascii":   Text,
	"utf8":    Text,
}

// String returns the canonical name of the representation
func (r Representation) String() string {
	if name, ok := representationNames[r]; ok {
		return name
	}
	return fmt.Sprintf("representation(%d)", int(r))
}

// Representations lists every supported representation in declaration order
func Representations() []Representation {
	return []Representation{Hex, Bits, Octal, Decimal, Base64, Text}
}

// ParseRepresentation resolves a representation from its name or alias (case-insensitive)
func ParseRepresentation(name string) (Representation, error) {
	if r, ok := representationAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown representation: %q", name)
}

// Decode parses text in the given representation into a byte buffer.
// Malformed input yields a *FormatError; nothing is ever truncated or guessed.
func Decode(repr Representation, text string) ([]byte, error) {
	switch repr {
	case Hex:
		return decodeHex(text)
	case Bits:
		return decodeBits(text)
	case Octal:
		return decodeRadix(Octal, text)
	case Decimal:
		return decodeRadix(Decimal, text)
	case Base64:
		return decodeBase64(text)
	case Text:
		return decodeText(text)
	default:
		return nil, fmt.Errorf("unsupported representation: %s", repr)
	}
}

// Encode renders a byte buffer in the given representation.
// Text uses the Strict policy and fails with *EncodingError on invalid UTF-8.
func Encode(buf []byte, repr Representation) (string, error) {
	switch repr {
	case Hex:
		return hex.EncodeToString(buf), nil
	case Bits:
		return encodeBits(buf), nil
	case Octal:
		return encodeRadix(Octal, buf), nil
	case Decimal:
		return encodeRadix(Decimal, buf), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(buf), nil
	case Text:
		return EncodeText(buf, Strict)
	default:
		return "", fmt.Errorf("unsupported representation: %s", repr)
	}
}

// Convert decodes text from one representation and encodes it into another.
// The policy only matters when the target is Text.
func Convert(text string, from, to Representation, policy ErrorPolicy) (string, error) {
	buf, err := Decode(from, text)
	if err != nil {
		return "", err
	}
	if to == Text {
		return EncodeText(buf, policy)
	}
	return Encode(buf, to)
}

// Validate reports whether text satisfies the grammar of repr
func Validate(repr Representation, text string) error {
	_, err := Decode(repr, text)
	return err
}

func decodeHex(text string) ([]byte, error) {
	for i := 0; i < len(text); i++ {
		if !isHexDigit(text[i]) {
			return nil, formatErr(Hex, i, fmt.Sprintf("invalid hex digit %q", text[i]))
		}
	}
	if len(text)%2 != 0 {
		return nil, formatErr(Hex, -1, fmt.Sprintf("odd length %d", len(text)))
	}
	buf, err := hex.DecodeString(text)
	if err != nil {
		return nil, formatErr(Hex, -1, err.Error())
	}
	return buf, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func decodeBits(text string) ([]byte, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '0' && text[i] != '1' {
			return nil, formatErr(Bits, i, fmt.Sprintf("invalid binary digit %q", text[i]))
		}
	}
	if len(text)%8 != 0 {
		return nil, formatErr(Bits, -1, fmt.Sprintf("length %d is not a multiple of 8", len(text)))
	}

	buf := make([]byte, len(text)/8)
	for i := range buf {
		var b byte
		for _, c := range []byte(text[i*8 : i*8+8]) {
			b = b<<1 | (c - '0')
		}
		buf[i] = b
	}
	return buf, nil
}

func encodeBits(buf []byte) string {
	var sb strings.Builder
	sb.Grow(len(buf) * 8)
	for _, b := range buf {
		for shift := 7; shift >= 0; shift-- {
			sb.WriteByte('0' + (b>>uint(shift))&1)
		}
	}
	return sb.String()
}

func decodeBase64(text string) ([]byte, error) {
	// StdEncoding silently skips CR and LF, which are not part of the alphabet
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		return nil, formatErr(Base64, i, "line breaks are not allowed")
	}
	buf, err := base64.StdEncoding.Strict().DecodeString(text)
	if err != nil {
		if corrupt, ok := err.(base64.CorruptInputError); ok {
			return nil, formatErr(Base64, int(corrupt), "illegal character or padding")
		}
		return nil, formatErr(Base64, -1, err.Error())
	}
	return buf, nil
}

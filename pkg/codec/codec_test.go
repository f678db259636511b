/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: codec_test.go
Description: Tests for the multi-base codec. Covers the known conversion vectors, exact
round-tripping, integer normalisation for octal and decimal, and rejection of malformed
input with typed errors.
*/

package codec_test

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/kleascm/cryptkit/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHexToBase64 tests the classic hex to base64 conversion vector
func TestHexToBase64(t *testing.T) {
	in := "49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d"
	out, err := codec.Convert(in, codec.Hex, codec.Base64, codec.Strict)
	require.NoError(t, err)
	assert.Equal(t, "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t", out)

	text, err := codec.Convert(in, codec.Hex, codec.Text, codec.Strict)
	require.NoError(t, err)
	assert.Equal(t, "I'm killing your brain like a poisonous mushroom", text)
}

// TestEncodeForms tests the canonical encode form of every representation
func TestEncodeForms(t *testing.T) {
	buf := []byte{0x01, 0xAB, 0x00}

	tests := []struct {
		repr codec.Representation
		want string
	}{
		{codec.Hex, "01ab00"},
		{codec.Bits, "000000011010101100000000"},
		{codec.Octal, "325400"},
		{codec.Decimal, "109312"},
		{codec.Base64, "AasA"},
	}

	for _, tt := range tests {
		t.Run(tt.repr.String(), func(t *testing.T) {
			got, err := codec.Encode(buf, tt.repr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestRoundTripLossless tests decode(encode(b)) == b for the lossless representations
func TestRoundTripLossless(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	buffers := [][]byte{{}, {0x00}, {0x00, 0x00, 0xff}, []byte("plain ascii")}
	for i := 0; i < 50; i++ {
		buf := make([]byte, rng.Intn(64))
		rng.Read(buf)
		buffers = append(buffers, buf)
	}

	for _, repr := range []codec.Representation{codec.Hex, codec.Bits, codec.Base64} {
		for _, buf := range buffers {
			encoded, err := codec.Encode(buf, repr)
			require.NoError(t, err)
			decoded, err := codec.Decode(repr, encoded)
			require.NoError(t, err, "repr=%s encoded=%q", repr, encoded)
			assert.Equal(t, len(buf), len(decoded))
			if len(buf) > 0 {
				assert.Equal(t, buf, decoded, "repr=%s", repr)
			}
		}
	}

	utf8Text := []byte("héllo wörld ✓")
	encoded, err := codec.Encode(utf8Text, codec.Text)
	require.NoError(t, err)
	decoded, err := codec.Decode(codec.Text, encoded)
	require.NoError(t, err)
	assert.Equal(t, utf8Text, decoded)
}

// TestRadixNormalisation tests that octal and decimal round-trip modulo leading zero bytes
func TestRadixNormalisation(t *testing.T) {
	for _, repr := range []codec.Representation{codec.Octal, codec.Decimal} {
		t.Run(repr.String(), func(t *testing.T) {
			encoded, err := codec.Encode([]byte{0x00, 0x00, 0x01, 0x02}, repr)
			require.NoError(t, err)
			decoded, err := codec.Decode(repr, encoded)
			require.NoError(t, err)
			assert.Equal(t, []byte{0x01, 0x02}, decoded)

			zero, err := codec.Decode(repr, "000")
			require.NoError(t, err)
			assert.Equal(t, []byte{0x00}, zero)

			out, err := codec.Encode(zero, repr)
			require.NoError(t, err)
			assert.Equal(t, "0", out)
		})
	}

	buf, err := codec.Decode(codec.Octal, "0o777")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xff}, buf)

	buf, err = codec.Decode(codec.Decimal, "00256")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00}, buf)

	out, err := codec.Encode(buf, codec.Decimal)
	require.NoError(t, err)
	assert.Equal(t, "256", out)
}

// TestMalformedInput tests that grammar violations fail with a FormatError
func TestMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		repr codec.Representation
		in   string
	}{
		{"hex odd length", codec.Hex, "abc"},
		{"hex bad digit", codec.Hex, "zz"},
		{"bits bad char", codec.Bits, "1010102"},
		{"bits short", codec.Bits, "1010101"},
		{"base64 padding", codec.Base64, "abc"},
		{"base64 alphabet", codec.Base64, "ab*d"},
		{"base64 newline", codec.Base64, "YWJj\nZGVm"},
		{"octal digit", codec.Octal, "178"},
		{"octal bare prefix", codec.Octal, "0o"},
		{"octal sign", codec.Octal, "-7"},
		{"decimal letter", codec.Decimal, "12a"},
		{"decimal sign", codec.Decimal, "+12"},
		{"text invalid utf-8", codec.Text, "ok\xffno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := codec.Decode(tt.repr, tt.in)
			require.Error(t, err)
			assert.Nil(t, buf)
			assert.True(t, errors.Is(err, codec.ErrFormat))

			var formatErr *codec.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.repr, formatErr.Repr)
			assert.False(t, errors.Is(err, codec.ErrEncoding))
		})
	}
}

// TestFormatErrorOffset tests that positional violations report the offending offset
func TestFormatErrorOffset(t *testing.T) {
	_, err := codec.Decode(codec.Bits, "1010102")
	var formatErr *codec.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, 6, formatErr.Offset)

	_, err = codec.Decode(codec.Octal, "0o19")
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, 3, formatErr.Offset)

	_, err = codec.Decode(codec.Hex, "abc")
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, -1, formatErr.Offset)
	assert.Contains(t, err.Error(), "odd length")
}

// TestEmptyInput tests that empty text decodes to an empty buffer everywhere
func TestEmptyInput(t *testing.T) {
	for _, repr := range codec.Representations() {
		t.Run(repr.String(), func(t *testing.T) {
			buf, err := codec.Decode(repr, "")
			require.NoError(t, err)
			assert.Empty(t, buf)

			out, err := codec.Encode(nil, repr)
			require.NoError(t, err)
			assert.Equal(t, "", out)
		})
	}
}

// TestHexCaseInsensitive tests that hex decode accepts both cases and encodes lowercase
func TestHexCaseInsensitive(t *testing.T) {
	buf, err := codec.Decode(codec.Hex, "DeadBEEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, buf)

	out, err := codec.Encode(buf, codec.Hex)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", out)
}

// TestTextPolicies tests strict, replace and ignore handling of invalid UTF-8
func TestTextPolicies(t *testing.T) {
	buf := []byte{'a', 0xff, 'b', 0xc3}

	_, err := codec.EncodeText(buf, codec.Strict)
	require.Error(t, err)
	var encErr *codec.EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, 1, encErr.Offset)
	assert.True(t, errors.Is(err, codec.ErrEncoding))

	_, err = codec.Encode(buf, codec.Text)
	assert.True(t, errors.Is(err, codec.ErrEncoding))

	replaced, err := codec.EncodeText(buf, codec.Replace)
	require.NoError(t, err)
	assert.Equal(t, "a\uFFFDb\uFFFD", replaced)

	ignored, err := codec.EncodeText(buf, codec.Ignore)
	require.NoError(t, err)
	assert.Equal(t, "ab", ignored)

	valid, err := codec.EncodeText([]byte("ünïcode"), codec.Strict)
	require.NoError(t, err)
	assert.Equal(t, "ünïcode", valid)
}

// TestTextReplaceSubparts tests that each maximal ill-formed subpart becomes one U+FFFD
func TestTextReplaceSubparts(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"truncated three-byte", []byte{'a', 0xff, 0xe2, 0x82, 'b'}, "a\uFFFD\uFFFDb"},
		{"truncated four-byte at end", []byte{'x', 0xf0, 0x9f, 0x98}, "x\uFFFD"},
		{"overlong lead", []byte{0xe0, 0x80, 'y'}, "\uFFFD\uFFFDy"},
		{"surrogate", []byte{0xed, 0xa0, 0x80}, "\uFFFD\uFFFD\uFFFD"},
		{"above max code point", []byte{0xf4, 0x90, 0x80, 0x80}, "\uFFFD\uFFFD\uFFFD\uFFFD"},
		{"lone continuation", []byte{0x80, 0xbf}, "\uFFFD\uFFFD"},
		{"valid around invalid", []byte("\u00e9\uFFFD\xc3\u20ac"), "\u00e9\uFFFD\uFFFD\u20ac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.EncodeText(tt.in, codec.Replace)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	long := append(bytes.Repeat([]byte("abc"), 4096), 0xe2, 0x82)
	got, err := codec.EncodeText(long, codec.Replace)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("abc", 4096)+"\uFFFD", got)
}

// TestParseNames tests representation and policy name parsing
func TestParseNames(t *testing.T) {
	for name, want := range map[string]codec.Representation{
		"hex": codec.Hex, "BIN": codec.Bits, "oct": codec.Octal,
		"dec": codec.Decimal, "b64": codec.Base64, "ascii": codec.Text,
	} {
		got, err := codec.ParseRepresentation(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}
	_, err := codec.ParseRepresentation("base32")
	assert.Error(t, err)

	policy, err := codec.ParseErrorPolicy("Replace")
	require.NoError(t, err)
	assert.Equal(t, codec.Replace, policy)

	policy, err = codec.ParseErrorPolicy("")
	require.NoError(t, err)
	assert.Equal(t, codec.Strict, policy)

	_, err = codec.ParseErrorPolicy("surrogatepass")
	assert.Error(t, err)
}

// TestConvertMatrix tests every pair of binary-safe representations on one value
func TestConvertMatrix(t *testing.T) {
	forms := map[codec.Representation]string{
		codec.Hex:     "4869",
		codec.Bits:    "0100100001101001",
		codec.Octal:   "44151",
		codec.Decimal: "18537",
		codec.Base64:  "SGk=",
		codec.Text:    "Hi",
	}

	for from, in := range forms {
		for to, want := range forms {
			got, err := codec.Convert(in, from, to, codec.Strict)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, want, got, "%s -> %s", from, to)
		}
	}
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: radix.go
Description: Octal and decimal representations. Both interpret the whole buffer as one
unsigned big-endian integer, so leading zero bytes are not preserved.
*/

package codec

import (
	"fmt"
	"math/big"
	"strings"
)

func radixBase(repr Representation) int {
	if repr == Octal {
		return 8
	}
	return 10
}

// decodeRadix parses an unsigned integer and returns its minimal big-endian bytes.
// Value 0 decodes to a single zero byte; empty text decodes to an empty buffer.
func decodeRadix(repr Representation, text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}

	digits := text
	offset := 0
	if repr == Octal && strings.HasPrefix(digits, "0o") {
		digits = digits[2:]
		offset = 2
		if digits == "" {
			return nil, formatErr(repr, -1, "prefix without digits")
		}
	}

	maxDigit := byte('0' + radixBase(repr) - 1)
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > maxDigit {
			return nil, formatErr(repr, offset+i, fmt.Sprintf("invalid %s digit %q", repr, digits[i]))
		}
	}

	n, ok := new(big.Int).SetString(digits, radixBase(repr))
	if !ok {
		return nil, formatErr(repr, -1, "not an unsigned integer")
	}
	if n.Sign() == 0 {
		return []byte{0}, nil
	}
	return n.Bytes(), nil
}

// encodeRadix renders the buffer as bare digits with no prefix and no leading zeros
func encodeRadix(repr Representation, buf []byte) string {
	if len(buf) == 0 {
		return ""
	}
	return new(big.Int).SetBytes(buf).Text(radixBase(repr))
}

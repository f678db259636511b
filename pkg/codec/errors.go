/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Typed failures returned by the codec. FormatError reports text that does
not satisfy a representation's grammar, EncodingError reports a byte buffer that is
not valid UTF-8 under the strict text policy.
*/

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every *FormatError via errors.Is
	ErrFormat = errors.New("codec: malformed input")
	// ErrEncoding matches every *EncodingError via errors.Is
	ErrEncoding = errors.New("codec: invalid utf-8")
)

// FormatError is returned when input text does not match a representation's grammar
type FormatError struct {
	Repr   Representation // Representation being decoded
	Offset int            // Byte offset of the offending character, -1 when not positional
	Reason string         // Short description of the violation
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid %s input at offset %d: %s", e.Repr, e.Offset, e.Reason)
	}
	return fmt.Sprintf("invalid %s input: %s", e.Repr, e.Reason)
}

// Is makes errors.Is(err, ErrFormat) hold for any FormatError
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// EncodingError is returned when a buffer cannot be rendered as UTF-8 text
type EncodingError struct {
	Offset int // Offset of the first ill-formed byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("buffer is not valid utf-8: ill-formed sequence at offset %d", e.Offset)
}

// Is makes errors.Is(err, ErrEncoding) hold for any EncodingError
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

func formatErr(repr Representation, offset int, reason string) error {
	return &FormatError{Repr: repr, Offset: offset, Reason: reason}
}

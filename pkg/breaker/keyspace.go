/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: keyspace.go
Description: Caller-side key filters for narrowing a ranking after the full 256-key scan.
*/

package breaker

import (
	"fmt"
	"strings"
)

// KeyFilter reports whether a key belongs to a restricted keyspace
type KeyFilter func(key byte) bool

// AllKeys accepts every key
func AllKeys(byte) bool { return true }

// AlphanumericKeys accepts ASCII letters and digits
func AlphanumericKeys(key byte) bool {
	return ('a' <= key && key <= 'z') || ('A' <= key && key <= 'Z') || ('0' <= key && key <= '9')
}

// PrintableKeys accepts printable ASCII, space through tilde
func PrintableKeys(key byte) bool {
	return 0x20 <= key && key <= 0x7e
}

// ParseKeySpace resolves a filter by name: all, alnum or printable
func ParseKeySpace(name string) (KeyFilter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return AllKeys, nil
	case "alnum", "alphanumeric":
		return AlphanumericKeys, nil
	case "printable":
		return PrintableKeys, nil
	default:
		return nil, fmt.Errorf("unknown keyspace: %q", name)
	}
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatter for cryptkit. Compact single-line output with optional
colors, caller information and sorted structured fields. Key bytes and recovered
plaintexts get their own field types so they render readably in every format.
*/

package logging

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Key is a single-byte XOR key logged as 0xNN
type Key byte

func (k Key) String() string { return fmt.Sprintf("0x%02x", byte(k)) }

// MarshalText keeps the 0xNN form in JSON logs
func (k Key) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Plaintext is a recovered plaintext; bytes outside 0x20..0x7e are masked with '.'
type Plaintext []byte

const plaintextLimit = 40

func (p Plaintext) String() string {
	masked := make([]byte, len(p))
	for i, b := range p {
		if 0x20 <= b && b <= 0x7e {
			masked[i] = b
		} else {
			masked[i] = '.'
		}
	}
	return string(masked)
}

// MarshalText writes the masked text instead of base64 in JSON logs
func (p Plaintext) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

var levelColors = map[logrus.Level]int{
	logrus.DebugLevel: 37, // White
	logrus.InfoLevel:  32, // Green
	logrus.WarnLevel:  33, // Yellow
	logrus.ErrorLevel: 31, // Red
	logrus.FatalLevel: 35, // Magenta
	logrus.PanicLevel: 35,
}

// CustomFormatter provides compact, structured logging output
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	parts := make([]string, 0, 5)

	if f.Timestamp {
		parts = append(parts, f.paint(36, entry.Time.Format("2006-01-02 15:04:05.000")))
	}

	color, ok := levelColors[entry.Level]
	if !ok {
		color = 37
	}
	parts = append(parts, f.paint(color, strings.ToUpper(entry.Level.String())))

	if f.Caller && entry.HasCaller() {
		parts = append(parts, f.paint(33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)))
	}

	parts = append(parts, entry.Message)
	if len(entry.Data) > 0 {
		parts = append(parts, f.formatFields(entry.Data))
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// paint wraps text in an ANSI color when colors are enabled
func (f *CustomFormatter) paint(color int, text string) string {
	if !f.Colors {
		return text
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}

// formatFields renders fields as key=value pairs in key order
func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, f.paint(34, key)+"="+f.paint(32, f.formatValue(fields[key])))
	}
	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *CustomFormatter) formatValue(value interface{}) string {
	switch v := value.(type) {
	case Key:
		return v.String()
	case Plaintext:
		text := v.String()
		if len(text) > plaintextLimit {
			text = text[:plaintextLimit] + "..."
		}
		return strconv.Quote(text)
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case float64:
		return fmt.Sprintf("%.6f", v)
	case string:
		if len(v) > 50 {
			return v[:50] + "..."
		}
		return v
	case []byte:
		if len(v) > 20 {
			return fmt.Sprintf("[%d bytes]", len(v))
		}
		return fmt.Sprintf("%x", v)
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Package numbering formats and advances sequential invoice numbers such as
// INV-0000042.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultPrefix = "INV-"
	DefaultWidth  = 7
)

// Scheme describes one invoice number layout: a fixed prefix followed by a
// zero-padded decimal counter of Width digits.
type Scheme struct {
	Prefix  string
	Width   int
	pattern *regexp.Regexp
}

// NewScheme builds a Scheme. Empty prefix and non-positive width fall back
// to the defaults.
func NewScheme(prefix string, width int) *Scheme {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return &Scheme{
		Prefix:  prefix,
		Width:   width,
		pattern: regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `\d{` + strconv.Itoa(width) + `}$`),
	}
}

// Format renders n with the scheme's prefix and zero padding.
func (s *Scheme) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, n)
}

// Seed is the number handed to the very first invoice.
func (s *Scheme) Seed() string {
	return s.Format(1)
}

// Valid reports whether number is the prefix followed by exactly Width digits.
func (s *Scheme) Valid(number string) bool {
	return s.pattern.MatchString(number)
}

// Parse extracts the counter from number. Any digit count after the prefix
// is accepted so numbers issued under an older width still parse.
func (s *Scheme) Parse(number string) (int64, bool) {
	if !strings.HasPrefix(number, s.Prefix) {
		return 0, false
	}
	digits := strings.TrimPrefix(number, s.Prefix)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next derives the number following last, given count existing invoices.
// With no invoices it returns the seed; when last does not parse it falls
// back to count+1.
func (s *Scheme) Next(last string, count int64) string {
	if count == 0 {
		return s.Seed()
	}
	if n, ok := s.Parse(last); ok {
		return s.Format(n + 1)
	}
	return s.Format(count + 1)
}

package generator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/stepwise/pkg/domain"
)

// MaxSequenceLength bounds each LCS sequence, in runes. The table, and the
// number of steps, grow with the product of both lengths.
const MaxSequenceLength = domain.MaxSequenceLength

var ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")

// SanitizeSequence cleans a user-supplied LCS sequence: it rejects invalid
// UTF-8 and over-long input, and strips control characters so operation
// text stays safe to print to a terminal.
func SanitizeSequence(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, ErrInvalidUTF8)
	}

	// Fast path: if no control chars, return as is.
	clean := strings.IndexFunc(s, unicode.IsControl) < 0
	if !clean {
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			if !unicode.IsControl(r) {
				b.WriteRune(r)
			}
		}
		s = b.String()
	}

	// We explicitly reject rather than truncate so runs stay reproducible.
	if n := utf8.RuneCountInString(s); n > MaxSequenceLength {
		return "", fmt.Errorf("%w: sequence has %d characters, limit is %d", domain.ErrInvalidInput, n, MaxSequenceLength)
	}
	return s, nil
}

// Package generator produces the initial containers handed to runners:
// random and user-supplied arrays, the sample graphs and the canonical DP problems.
package generator

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

const (
	// MinSize and MaxSize bound the length of a random array.
	MinSize = 2
	MaxSize = domain.MaxArrayLen
	// DefaultSize is the array length used when none is requested.
	DefaultSize = 20

	// MinValue and MaxValue bound random element values (inclusive).
	MinValue = 10
	MaxValue = 309

	// MaxCustomValue is the largest user-supplied value that is kept.
	MaxCustomValue = 500
)

// RandomArray returns n elements with values uniform in [MinValue, MaxValue].
// A nil rng uses the global source.
func RandomArray(rng *rand.Rand, n int) ([]domain.Element, error) {
	if n < MinSize || n > MaxSize {
		return nil, fmt.Errorf("%w: array size must be between %d and %d, got %d", domain.ErrInvalidInput, MinSize, MaxSize, n)
	}
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	values := make([]int, n)
	for i := range values {
		values[i] = MinValue + intN(MaxValue-MinValue+1)
	}
	return domain.NewArray(values...), nil
}

var separators = regexp.MustCompile(`[,\s]+`)

// ParseCustom splits s on commas and/or whitespace and keeps the tokens that
// parse as integers in (0, MaxCustomValue]. Anything else is dropped silently.
// When nothing survives it returns domain.ErrInvalidInput and no array, so the
// caller keeps its previous one.
func ParseCustom(s string) ([]domain.Element, error) {
	var values []int
	for _, tok := range separators.Split(strings.TrimSpace(s), -1) {
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v <= 0 || v > MaxCustomValue {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values in (0, %d] found in %q", domain.ErrInvalidInput, MaxCustomValue, s)
	}
	if len(values) > MaxSize {
		return nil, fmt.Errorf("%w: %d values, limit is %d", domain.ErrInvalidInput, len(values), MaxSize)
	}
	return domain.NewArray(values...), nil
}

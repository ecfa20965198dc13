package dsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

var (
	itemSeparators = regexp.MustCompile(`[,;\s]+`)
	edgePattern    = regexp.MustCompile(`^([^-:\s]+)-([^-:\s]+)(?::([0-9]*\.?[0-9]+))?$`)
	nodePattern    = regexp.MustCompile(`^[^-:\s]+$`)
)

// DefaultWeight is used for edges written without a weight.
const DefaultWeight = 1

// Parse reads a graph from an edge list such as "A-B:4, A-D:2, Z".
// Each item is either FROM-TO[:WEIGHT] or a lone node id. Nodes appear in the
// order they are first mentioned.
func Parse(s string) (*domain.Graph, error) {
	b := New()
	items := 0
	for _, item := range itemSeparators.Split(strings.TrimSpace(s), -1) {
		if item == "" {
			continue
		}
		items++

		if m := edgePattern.FindStringSubmatch(item); m != nil {
			weight := float64(DefaultWeight)
			if m[3] != "" {
				w, err := strconv.ParseFloat(m[3], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: edge %q has invalid weight", domain.ErrInvalidInput, item)
				}
				weight = w
			}
			b.Add(m[1]).To(m[2], weight)
			continue
		}
		if nodePattern.MatchString(item) {
			b.Add(item)
			continue
		}
		return nil, fmt.Errorf("%w: cannot parse graph item %q (want FROM-TO[:WEIGHT] or NODE)", domain.ErrInvalidInput, item)
	}

	if items == 0 {
		return nil, fmt.Errorf("%w: graph is empty", domain.ErrInvalidInput)
	}
	return b.Build()
}

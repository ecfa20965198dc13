package domain

import "fmt"

// ElementState is the visual annotation of a single array element.
type ElementState string

const (
	ElementDefault        ElementState = "default"
	ElementComparing      ElementState = "comparing"
	ElementSwapping       ElementState = "swapping"
	ElementSorted         ElementState = "sorted"
	ElementPivot          ElementState = "pivot"
	ElementMerging        ElementState = "merging"
	ElementSelected       ElementState = "selected"
	ElementMinimum        ElementState = "minimum"
	ElementPartitionLeft  ElementState = "partition-left"
	ElementPartitionRight ElementState = "partition-right"
)

// Element is one value of a sorting array.
// Value never changes once generated; State is rewritten by every step that references it.
type Element struct {
	// ID is the element's original index. It travels with the value so that
	// stability can be observed in the final snapshot.
	ID    int          `json:"id" mapstructure:"id"`
	Value int          `json:"value" mapstructure:"value"`
	State ElementState `json:"state" mapstructure:"state"`
}

// NewArray builds an array of default elements tagged with their original index.
func NewArray(values ...int) []Element {
	arr := make([]Element, len(values))
	for i, v := range values {
		arr[i] = Element{ID: i, Value: v, State: ElementDefault}
	}
	return arr
}

// Values extracts the plain values of an array, in order.
func Values(arr []Element) []int {
	out := make([]int, len(arr))
	for i, el := range arr {
		out[i] = el.Value
	}
	return out
}

// ValidateArray checks the element contract: non-negative values.
func ValidateArray(arr []Element) error {
	for i, el := range arr {
		if el.Value < 0 {
			return fmt.Errorf("%w: element %d has negative value %d", ErrInvalidInput, i, el.Value)
		}
	}
	return nil
}

func cloneArray(arr []Element) []Element {
	if arr == nil {
		return nil
	}
	out := make([]Element, len(arr))
	copy(out, arr)
	return out
}

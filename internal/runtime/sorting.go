package runtime

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
)

// sortRecorder owns the working array of a sorting run and appends painted
// copies of it to the step list.
type sortRecorder struct {
	arr         []domain.Element
	steps       []domain.Step
	comparisons int
	swaps       int
}

func newSortRecorder(in []domain.Element) *sortRecorder {
	arr := make([]domain.Element, len(in))
	copy(arr, in)
	return &sortRecorder{arr: arr}
}

// emit records a snapshot where paint decides the state of every index.
func (r *sortRecorder) emit(op string, paint func(idx int) domain.ElementState) {
	snap := make([]domain.Element, len(r.arr))
	for i, el := range r.arr {
		el.State = paint(i)
		snap[i] = el
	}
	r.steps = append(r.steps, domain.Step{
		Array:       snap,
		Comparisons: r.comparisons,
		Swaps:       r.swaps,
		Operation:   op,
	})
}

func (r *sortRecorder) swap(i, j int) {
	r.arr[i], r.arr[j] = r.arr[j], r.arr[i]
}

func (r *sortRecorder) finish(op string) []domain.Step {
	r.emit(op, func(int) domain.ElementState { return domain.ElementSorted })
	return r.steps
}

// BubbleSort compares adjacent pairs and swaps them when out of order.
func BubbleSort(in domain.Input) ([]domain.Step, error) {
	r := newSortRecorder(in.Array)
	n := len(r.arr)

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			tail := func(idx int) domain.ElementState {
				if idx >= n-i {
					return domain.ElementSorted
				}
				return domain.ElementDefault
			}

			r.comparisons++
			r.emit(fmt.Sprintf("Comparing %d and %d", r.arr[j].Value, r.arr[j+1].Value), func(idx int) domain.ElementState {
				if idx == j || idx == j+1 {
					return domain.ElementComparing
				}
				return tail(idx)
			})

			if r.arr[j].Value > r.arr[j+1].Value {
				r.swaps++
				r.emit(fmt.Sprintf("Swapping %d and %d", r.arr[j].Value, r.arr[j+1].Value), func(idx int) domain.ElementState {
					if idx == j || idx == j+1 {
						return domain.ElementSwapping
					}
					return tail(idx)
				})
				r.swap(j, j+1)
			}
		}
	}
	return r.finish("Sorting complete!"), nil
}

// SelectionSort scans the unsorted suffix for its minimum and moves it into place.
func SelectionSort(in domain.Input) ([]domain.Step, error) {
	r := newSortRecorder(in.Array)
	n := len(r.arr)

	for i := 0; i < n-1; i++ {
		minIdx := i
		r.emit(fmt.Sprintf("Finding minimum from position %d", i), func(idx int) domain.ElementState {
			switch {
			case idx < i:
				return domain.ElementSorted
			case idx == i:
				return domain.ElementSelected
			}
			return domain.ElementDefault
		})

		for j := i + 1; j < n; j++ {
			r.comparisons++
			r.emit(fmt.Sprintf("Comparing %d with current minimum %d", r.arr[j].Value, r.arr[minIdx].Value), func(idx int) domain.ElementState {
				switch {
				case idx < i:
					return domain.ElementSorted
				case idx == i:
					return domain.ElementSelected
				case idx == j:
					return domain.ElementComparing
				case idx == minIdx:
					return domain.ElementMinimum
				}
				return domain.ElementDefault
			})
			if r.arr[j].Value < r.arr[minIdx].Value {
				minIdx = j
			}
		}

		if minIdx != i {
			r.swaps++
			r.emit(fmt.Sprintf("Placing minimum %d at position %d", r.arr[minIdx].Value, i), func(idx int) domain.ElementState {
				switch {
				case idx < i:
					return domain.ElementSorted
				case idx == i || idx == minIdx:
					return domain.ElementSwapping
				}
				return domain.ElementDefault
			})
			r.swap(i, minIdx)
		}
	}
	return r.finish("Selection sort complete!"), nil
}

// QuickSort partitions around the last element of each range (Lomuto) and
// recurses into the left partition first.
func QuickSort(in domain.Input) ([]domain.Step, error) {
	r := newSortRecorder(in.Array)

	var partition func(low, high int) int
	partition = func(low, high int) int {
		pivot := r.arr[high].Value
		i := low - 1

		r.emit(fmt.Sprintf("Pivot selected: %d", pivot), func(idx int) domain.ElementState {
			switch {
			case idx == high:
				return domain.ElementPivot
			case idx >= low && idx <= high:
				return domain.ElementComparing
			}
			return domain.ElementSorted
		})

		for j := low; j < high; j++ {
			r.comparisons++
			r.emit(fmt.Sprintf("Comparing %d with pivot %d", r.arr[j].Value, pivot), func(idx int) domain.ElementState {
				switch {
				case idx == high:
					return domain.ElementPivot
				case idx == j:
					return domain.ElementComparing
				case idx <= i:
					return domain.ElementPartitionLeft
				case idx >= low && idx < high:
					return domain.ElementPartitionRight
				}
				return domain.ElementDefault
			})

			if r.arr[j].Value < pivot {
				i++
				if i != j {
					r.swaps++
					r.emit(fmt.Sprintf("Moving %d to left partition", r.arr[j].Value), func(idx int) domain.ElementState {
						switch {
						case idx == high:
							return domain.ElementPivot
						case idx == i || idx == j:
							return domain.ElementSwapping
						case idx >= low && idx <= high:
							return domain.ElementDefault
						}
						return domain.ElementSorted
					})
					r.swap(i, j)
				}
			}
		}

		if i+1 != high {
			r.swaps++
			r.emit(fmt.Sprintf("Placing pivot %d in correct position", pivot), func(idx int) domain.ElementState {
				if idx == i+1 || idx == high {
					return domain.ElementSwapping
				}
				return domain.ElementDefault
			})
			r.swap(i+1, high)
		}
		return i + 1
	}

	var sortRange func(low, high int)
	sortRange = func(low, high int) {
		if low < high {
			p := partition(low, high)
			sortRange(low, p-1)
			sortRange(p+1, high)
		}
	}
	sortRange(0, len(r.arr)-1)

	return r.finish("Quick sort complete!"), nil
}

// MergeSort splits recursively and merges adjacent runs. Ties take the left
// element, so the sort is stable. Swaps counts element writes back into the array.
func MergeSort(in domain.Input) ([]domain.Step, error) {
	r := newSortRecorder(in.Array)

	merge := func(left, mid, right int) {
		leftRun := append([]domain.Element(nil), r.arr[left:mid+1]...)
		rightRun := append([]domain.Element(nil), r.arr[mid+1:right+1]...)

		r.emit(fmt.Sprintf("Merging subarrays [%d-%d] and [%d-%d]", left, mid, mid+1, right), func(idx int) domain.ElementState {
			switch {
			case idx >= left && idx <= mid:
				return domain.ElementPartitionLeft
			case idx > mid && idx <= right:
				return domain.ElementPartitionRight
			}
			return domain.ElementDefault
		})

		inRange := func(idx int) domain.ElementState {
			if idx >= left && idx <= right {
				return domain.ElementMerging
			}
			return domain.ElementDefault
		}

		i, j, k := 0, 0, left
		for i < len(leftRun) && j < len(rightRun) {
			r.comparisons++
			r.emit(fmt.Sprintf("Comparing %d and %d", leftRun[i].Value, rightRun[j].Value), inRange)
			if leftRun[i].Value <= rightRun[j].Value {
				r.arr[k] = leftRun[i]
				i++
			} else {
				r.arr[k] = rightRun[j]
				j++
			}
			k++
			r.swaps++
		}
		for ; i < len(leftRun); i, k = i+1, k+1 {
			r.arr[k] = leftRun[i]
			r.swaps++
		}
		for ; j < len(rightRun); j, k = j+1, k+1 {
			r.arr[k] = rightRun[j]
			r.swaps++
		}

		r.emit(fmt.Sprintf("Merged section [%d-%d]", left, right), func(idx int) domain.ElementState {
			if idx >= left && idx <= right {
				return domain.ElementSorted
			}
			return domain.ElementDefault
		})
	}

	var sortRange func(left, right int)
	sortRange = func(left, right int) {
		if left < right {
			mid := (left + right) / 2
			sortRange(left, mid)
			sortRange(mid+1, right)
			merge(left, mid, right)
		}
	}
	sortRange(0, len(r.arr)-1)

	return r.finish("Merge sort complete!"), nil
}

package domain

import "strconv"

// StepDiff lists what changed between two consecutive steps.
// It is designed to be serialized to JSON for partial updates on the client.
type StepDiff struct {
	Index int `json:"index"`

	// Changed maps array positions (or "row,col" for tables, node ids for graphs)
	// to their new state. Values are only included when they changed too.
	Changed map[string]CellChange `json:"changed,omitempty"`

	Comparisons *int    `json:"comparisons,omitempty"`
	Swaps       *int    `json:"swaps,omitempty"`
	Operation   *string `json:"operation,omitempty"`
}

// CellChange is the new state (and possibly value) of one container cell.
type CellChange struct {
	State string `json:"state"`
	Value *int   `json:"value,omitempty"`
}

// Diff calculates the difference between prev and next.
// If prev is nil, every cell of next is reported (initial load).
func Diff(index int, prev *Step, next Step) StepDiff {
	d := StepDiff{Index: index, Changed: map[string]CellChange{}}

	// 1. Counters and description
	if prev == nil || prev.Comparisons != next.Comparisons {
		d.Comparisons = &next.Comparisons
	}
	if prev == nil || prev.Swaps != next.Swaps {
		d.Swaps = &next.Swaps
	}
	if prev == nil || prev.Operation != next.Operation {
		d.Operation = &next.Operation
	}

	// 2. Container cells
	switch {
	case next.Array != nil:
		for i, el := range next.Array {
			var old *Element
			if prev != nil && i < len(prev.Array) {
				old = &prev.Array[i]
			}
			if old != nil && old.State == el.State && old.Value == el.Value {
				continue
			}
			change := CellChange{State: string(el.State)}
			if old == nil || old.Value != el.Value {
				v := el.Value
				change.Value = &v
			}
			d.Changed[strconv.Itoa(i)] = change
		}
	case next.Graph != nil:
		for _, n := range next.Graph.Nodes {
			if prev != nil && prev.Graph != nil && prev.Graph.StateOf(n.ID) == n.State {
				continue
			}
			d.Changed[n.ID] = CellChange{State: string(n.State)}
		}
	case next.Table != nil:
		for i, row := range next.Table {
			for j, cell := range row {
				var old *DPCell
				if prev != nil && i < len(prev.Table) && j < len(prev.Table[i]) {
					old = &prev.Table[i][j]
				}
				if old != nil && old.State == cell.State && old.Int() == cell.Int() && (old.Value == nil) == (cell.Value == nil) {
					continue
				}
				change := CellChange{State: string(cell.State)}
				if cell.Value != nil {
					v := *cell.Value
					change.Value = &v
				}
				d.Changed[strconv.Itoa(i)+","+strconv.Itoa(j)] = change
			}
		}
	}

	if len(d.Changed) == 0 {
		d.Changed = nil
	}
	return d
}

package domain

// CellState is the visual annotation of a DP table cell.
type CellState string

const (
	CellDefault  CellState = "default"
	CellComputed CellState = "computed"
	CellOptimal  CellState = "optimal"
	CellCurrent  CellState = "current"
)

// DPCell is one cell of a dynamic-programming table. A nil Value is an empty cell.
type DPCell struct {
	Value *int      `json:"value"`
	State CellState `json:"state"`
}

// Table is a rectangular grid of cells. Dimensions are fixed per problem instance.
type Table [][]DPCell

// NewTable allocates a rows×cols table. When zeroed is true every cell holds 0,
// otherwise every cell starts empty.
func NewTable(rows, cols int, zeroed bool) Table {
	t := make(Table, rows)
	for i := range t {
		t[i] = make([]DPCell, cols)
		for j := range t[i] {
			t[i][j].State = CellDefault
			if zeroed {
				t[i][j].Value = IntPtr(0)
			}
		}
	}
	return t
}

// Int returns the cell value, treating an empty cell as 0.
func (c DPCell) Int() int {
	if c.Value == nil {
		return 0
	}
	return *c.Value
}

// Rows reports the number of rows.
func (t Table) Rows() int { return len(t) }

// Cols reports the number of columns (0 for an empty table).
func (t Table) Cols() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Clone deep-copies the table, including every cell value.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = make([]DPCell, len(row))
		for j, cell := range row {
			out[i][j].State = cell.State
			if cell.Value != nil {
				out[i][j].Value = IntPtr(*cell.Value)
			}
		}
	}
	return out
}

// IntPtr is a small helper for building cell values.
func IntPtr(v int) *int {
	return &v
}

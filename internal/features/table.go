package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// FeatureTable holds named scalar features for a set of objects: one row per
// object ID, one column per feature. Column order is significant and
// preserved through every transform.
//
// Tables are treated as immutable values once published: Prefixed and
// ConcatColumns build new tables instead of mutating their inputs. The only
// mutating method is AppendColumn, used while a routine assembles its own
// result.
type FeatureTable struct {
	rowLabels []int
	names     []string
	cols      map[string][]float64
}

// NewFeatureTable creates an empty table whose row index is the given object
// ID sequence. The slice is copied.
func NewFeatureTable(rowLabels []int) *FeatureTable {
	cp := make([]int, len(rowLabels))
	copy(cp, rowLabels)
	return &FeatureTable{
		rowLabels: cp,
		cols:      make(map[string][]float64),
	}
}

// RowCount returns the number of rows (objects).
func (t *FeatureTable) RowCount() int { return len(t.rowLabels) }

// RowLabels returns a copy of the row index: the object IDs, in table order.
func (t *FeatureTable) RowLabels() []int {
	cp := make([]int, len(t.rowLabels))
	copy(cp, t.rowLabels)
	return cp
}

// ColumnNames returns a copy of the column names in table order.
func (t *FeatureTable) ColumnNames() []string {
	cp := make([]string, len(t.names))
	copy(cp, t.names)
	return cp
}

// Column returns a copy of the named column's values in row order, and
// whether the column exists.
func (t *FeatureTable) Column(name string) ([]float64, bool) {
	col, ok := t.cols[name]
	if !ok {
		return nil, false
	}
	cp := make([]float64, len(col))
	copy(cp, col)
	return cp, true
}

// Value returns the value at a row index and column name, and whether the
// cell exists.
func (t *FeatureTable) Value(row int, name string) (float64, bool) {
	if row < 0 || row >= len(t.rowLabels) {
		return 0, false
	}
	col, ok := t.cols[name]
	if !ok {
		return 0, false
	}
	return col[row], true
}

// AppendColumn adds a column at the end of the column order. The value slice
// is copied. Length must match the row count; duplicate names are rejected.
func (t *FeatureTable) AppendColumn(name string, values []float64) error {
	if len(values) != len(t.rowLabels) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.rowLabels))
	}
	if _, exists := t.cols[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	t.names = append(t.names, name)
	t.cols[name] = cp
	return nil
}

// Prefixed returns a new table with every column renamed by prepending the
// given prefix. The receiver is unchanged; column data is shared by copy.
func (t *FeatureTable) Prefixed(prefix string) *FeatureTable {
	out := NewFeatureTable(t.rowLabels)
	for _, name := range t.names {
		// Length always matches; AppendColumn cannot fail here.
		_ = out.AppendColumn(prefix+name, t.cols[name])
	}
	return out
}

// ConcatColumns concatenates tables column-wise into a new table.
//
// Every input must share the identical row index: the same object IDs in the
// same order. No row is ever added or dropped. Column order is the input
// order, columns of earlier tables first. Duplicate column names across
// inputs are an error.
func ConcatColumns(tables ...*FeatureTable) (*FeatureTable, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to concatenate")
	}

	first := tables[0]
	for i, t := range tables[1:] {
		if len(t.rowLabels) != len(first.rowLabels) {
			return nil, fmt.Errorf("table %d has %d rows, want %d", i+1, len(t.rowLabels), len(first.rowLabels))
		}
		for j, id := range t.rowLabels {
			if id != first.rowLabels[j] {
				return nil, fmt.Errorf("table %d row %d has object ID %d, want %d", i+1, j, id, first.rowLabels[j])
			}
		}
	}

	out := NewFeatureTable(first.rowLabels)
	for _, t := range tables {
		for _, name := range t.names {
			if err := out.AppendColumn(name, t.cols[name]); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// WriteCSV writes the table as CSV: a header row of "Label" followed by the
// column names, then one row per object. Values are rendered with
// strconv.FormatFloat 'g' formatting, so writing the same table twice
// produces byte-identical output.
func (t *FeatureTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"Label"}, t.names...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	row := make([]string, len(t.names)+1)
	for i, id := range t.rowLabels {
		row[0] = strconv.Itoa(id)
		for j, name := range t.names {
			row[j+1] = strconv.FormatFloat(t.cols[name][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

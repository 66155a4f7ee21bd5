// Package table holds the small column-ordered record table used to present
// optimizer, analyzer and market data responses.
package table

import (
	"fmt"
	"sort"
)

// Record is one row keyed by column name. A missing key reads as a null cell.
type Record map[string]any

// Table is an ordered set of columns and the rows holding them
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// New creates an empty table with the given columns
func New(columns ...string) Table {
	return Table{Columns: append([]string(nil), columns...), Rows: []Record{}}
}

// FromRecords builds a table whose columns are the sorted union of all record keys
func FromRecords(records []Record) Table {
	seen := make(map[string]struct{})
	for _, record := range records {
		for key := range record {
			seen[key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	t := New(columns...)
	for _, record := range records {
		t.Append(record)
	}
	return t
}

// Append adds a copy of record restricted to the table's columns
func (t *Table) Append(record Record) {
	row := make(Record, len(t.Columns))
	for _, column := range t.Columns {
		row[column] = record[column]
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows
func (t Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns
func (t Table) HasColumn(name string) bool {
	return indexOf(t.Columns, name) >= 0
}

// Column returns every value of the named column in row order
func (t Table) Column(name string) []any {
	values := make([]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[name])
	}
	return values
}

// Select projects the table onto columns. Unknown columns yield null cells.
func (t Table) Select(columns ...string) Table {
	out := New(columns...)
	for _, row := range t.Rows {
		out.Append(row)
	}
	return out
}

// LeftJoin keeps every row of t and attaches the matching rows of right where
// t[leftKey] equals right[rightKey]. Rows without a match get null right-hand
// cells; several matches repeat the left row once per match. When both keys
// share a name the key appears once. Other overlapping columns get _x and _y suffixes.
func (t Table) LeftJoin(right Table, leftKey, rightKey string) Table {
	sameKey := leftKey == rightKey
	overlaps := func(column string) bool {
		return t.HasColumn(column) && right.HasColumn(column) && !(sameKey && column == leftKey)
	}

	leftNames := make(map[string]string, len(t.Columns))
	rightNames := make(map[string]string, len(right.Columns))
	var columns []string

	for _, column := range t.Columns {
		name := column
		if overlaps(column) {
			name += "_x"
		}
		leftNames[column] = name
		columns = append(columns, name)
	}

	for _, column := range right.Columns {
		if sameKey && column == rightKey {
			continue
		}
		name := column
		if overlaps(column) {
			name += "_y"
		}
		rightNames[column] = name
		columns = append(columns, name)
	}

	index := make(map[string][]Record)
	for _, row := range right.Rows {
		key, ok := joinKey(row[rightKey])
		if !ok {
			continue
		}
		index[key] = append(index[key], row)
	}

	out := New(columns...)
	for _, left := range t.Rows {
		var matches []Record
		if key, ok := joinKey(left[leftKey]); ok {
			matches = index[key]
		}
		if len(matches) == 0 {
			matches = []Record{nil}
		}

		for _, match := range matches {
			row := make(Record, len(columns))
			for column, name := range leftNames {
				row[name] = left[column]
			}
			for column, name := range rightNames {
				row[name] = match[column]
			}
			out.Rows = append(out.Rows, row)
		}
	}

	return out
}

// joinKey turns a cell into a map key; values of different types never match
func joinKey(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	return fmt.Sprintf("%T:%v", value, value), true
}

func indexOf(columns []string, name string) int {
	for i, column := range columns {
		if column == name {
			return i
		}
	}
	return -1
}

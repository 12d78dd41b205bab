package clause

import (
	"maps"
	"slices"
)

// Assignment sets one column in an INSERT or UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// Values is an ordered list of assignments.
type Values []Assignment

// Set is shorthand for Assignment{Column: column, Value: value}.
func Set(column string, value any) Assignment {
	return Assignment{Column: column, Value: value}
}

// ValuesFromMap converts a column map into Values sorted by column name, so the rendered
// statement does not depend on map iteration order.
func ValuesFromMap(columns map[string]any) Values {
	values := make(Values, 0, len(columns))
	for _, column := range slices.Sorted(maps.Keys(columns)) {
		values = append(values, Set(column, columns[column]))
	}
	return values
}

// Columns returns the assigned column names in order.
func (v Values) Columns() []string {
	columns := make([]string, 0, len(v))
	for _, assignment := range v {
		columns = append(columns, assignment.Column)
	}
	return columns
}

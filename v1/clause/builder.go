package clause

import (
	"fmt"
	"strings"
)

// Builder renders clauses and statements. Values are escaped with the bound Escaper.
type Builder struct {
	escaper Escaper
}

// NewBuilder returns a Builder that escapes values with escaper.
//
// A Builder with a nil escaper still renders identifiers, conditions without values,
// ORDER BY and LIMIT clauses; it fails with ErrNoEscaper as soon as a non-null value has to
// be quoted.
func NewBuilder(escaper Escaper) *Builder {
	return &Builder{escaper: escaper}
}

// quote escapes s and wraps it in single quotes.
func (b *Builder) quote(s string) (string, error) {
	if b == nil || b.escaper == nil {
		return "", ErrNoEscaper
	}

	escaped, err := b.escaper.Escape(s)
	if err != nil {
		return "", err
	}

	return "'" + escaped + "'", nil
}

// tableName backticks a table name, rejecting an empty one.
func tableName(table string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("%w: empty table name", ErrMalformedAttribute)
	}
	return quoteIdentifier(table), nil
}

// SelectStatement renders SELECT * FROM `table` followed by the WHERE, ORDER BY and LIMIT
// clauses that are not empty.
func (b *Builder) SelectStatement(table string, where Where, orderBy OrderBy, limit Limit) (string, error) {
	tableSQL, err := tableName(table)
	if err != nil {
		return "", err
	}
	whereSQL, err := b.FormatWhere(where)
	if err != nil {
		return "", err
	}
	orderSQL, err := b.FormatOrderBy(orderBy)
	if err != nil {
		return "", err
	}
	limitSQL, err := b.FormatLimit(limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("SELECT * FROM %s%s%s%s", tableSQL, whereSQL, orderSQL, limitSQL), nil
}

// InsertStatement renders INSERT INTO `table` (`c1`, ...) VALUES ('v1', ...).
// It fails with ErrNoColumns when values is empty.
func (b *Builder) InsertStatement(table string, values Values) (string, error) {
	tableSQL, err := tableName(table)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", ErrNoColumns
	}

	columns := make([]Attribute, 0, len(values))
	literals := make([]any, 0, len(values))
	for _, assignment := range values {
		columns = append(columns, Ident(assignment.Column))
		literals = append(literals, assignment.Value)
	}

	columnSQL, err := b.FormatAttributeList(columns...)
	if err != nil {
		return "", err
	}
	valueSQL, err := b.FormatValueList(literals)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", tableSQL, columnSQL, valueSQL), nil
}

// UpdateStatement renders UPDATE `table` SET `c` = 'v', ... followed by the WHERE clause.
// It fails with ErrNoColumns when values is empty.
func (b *Builder) UpdateStatement(table string, values Values, where Where) (string, error) {
	tableSQL, err := tableName(table)
	if err != nil {
		return "", err
	}
	setSQL, err := b.FormatAssignments(values)
	if err != nil {
		return "", err
	}
	whereSQL, err := b.FormatWhere(where)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("UPDATE %s SET %s%s", tableSQL, setSQL, whereSQL), nil
}

// DeleteStatement renders DELETE FROM `table` WHERE `attribute` = 'value'.
func (b *Builder) DeleteStatement(table, attribute string, value any) (string, error) {
	tableSQL, err := tableName(table)
	if err != nil {
		return "", err
	}
	whereSQL, err := b.FormatWhere(Match(Eq(attribute, value)))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("DELETE FROM %s%s", tableSQL, whereSQL), nil
}

// CountStatement renders SELECT COUNT(`attribute`) FROM `table` followed by the WHERE clause.
func (b *Builder) CountStatement(table, attribute string, where Where) (string, error) {
	tableSQL, err := tableName(table)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(attribute) == "" {
		return "", fmt.Errorf("%w: empty count attribute", ErrMalformedAttribute)
	}
	whereSQL, err := b.FormatWhere(where)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("SELECT COUNT(%s) FROM %s%s", quoteIdentifier(attribute), tableSQL, whereSQL), nil
}

// FormatAssignments renders `c1` = 'v1', `c2` = 'v2'. Assignments are always comma-joined.
func (b *Builder) FormatAssignments(values Values) (string, error) {
	if len(values) == 0 {
		return "", ErrNoColumns
	}

	parts := make([]string, 0, len(values))
	for _, assignment := range values {
		if strings.TrimSpace(assignment.Column) == "" {
			return "", fmt.Errorf("%w: empty column in assignment", ErrMalformedAttribute)
		}
		literal, err := b.FormatValue(assignment.Value)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", assignment.Column, err)
		}
		parts = append(parts, quoteIdentifier(assignment.Column)+" = "+literal)
	}

	return strings.Join(parts, ", "), nil
}

package clause

import (
	"fmt"
	"strings"
)

// Direction is an ORDER BY direction. The zero value leaves the direction out, which MySQL
// reads as ascending.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// ParseDirection accepts "asc" and "desc" in any case; the empty string stays empty.
func ParseDirection(direction string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(direction))); d {
	case "", Ascending, Descending:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}
}

// Order sorts by one column.
type Order struct {
	Column    string
	Direction Direction
}

// OrderBy keeps the caller's column order.
type OrderBy []Order

// Asc sorts column ascending.
func Asc(column string) Order {
	return Order{Column: column, Direction: Ascending}
}

// Desc sorts column descending.
func Desc(column string) Order {
	return Order{Column: column, Direction: Descending}
}

// Columns sorts by each column without an explicit direction.
func Columns(columns ...string) OrderBy {
	order := make(OrderBy, 0, len(columns))
	for _, column := range columns {
		order = append(order, Order{Column: column})
	}
	return order
}

// FormatOrderBy renders " ORDER BY `a` ASC, `b` DESC", or the empty string for an empty
// OrderBy.
func (b *Builder) FormatOrderBy(order OrderBy) (string, error) {
	if len(order) == 0 {
		return "", nil
	}

	attributes := make([]Attribute, 0, len(order))
	for _, o := range order {
		direction, err := ParseDirection(string(o.Direction))
		if err != nil {
			return "", err
		}
		if direction == "" {
			attributes = append(attributes, Ident(o.Column))
			continue
		}
		attributes = append(attributes, Ident(o.Column, string(direction)))
	}

	list, err := b.FormatAttributeList(attributes...)
	if err != nil {
		return "", err
	}

	return " ORDER BY " + list, nil
}

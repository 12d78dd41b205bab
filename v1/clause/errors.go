package clause

import "errors"

var (
	// ErrNoEscaper is returned when a value has to be escaped but the builder has no escaper.
	ErrNoEscaper = errors.New("clause: no escaper bound to builder")

	// ErrMalformedCondition is returned for loose condition entries that are not
	// [raw], [column, value] or [column, operator, value], and for conditions on an empty
	// column.
	ErrMalformedCondition = errors.New("clause: malformed condition")

	// ErrMalformedAttribute is returned for empty identifiers, table names or columns and for
	// unsupported attribute shapes.
	ErrMalformedAttribute = errors.New("clause: malformed attribute")

	// ErrInvalidConnector is returned for connectors other than AND and OR.
	ErrInvalidConnector = errors.New("clause: invalid condition connector")

	// ErrInvalidOperator is returned for comparison operators outside the supported set.
	ErrInvalidOperator = errors.New("clause: invalid comparison operator")

	// ErrInvalidDirection is returned for ORDER BY directions other than ASC and DESC.
	ErrInvalidDirection = errors.New("clause: invalid order direction")

	// ErrInvalidLimit is returned for negative or non-numeric limits.
	ErrInvalidLimit = errors.New("clause: invalid limit")

	// ErrUnsupportedValue is returned when a value cannot be rendered as an SQL literal.
	ErrUnsupportedValue = errors.New("clause: unsupported value")

	// ErrNoColumns is returned by the INSERT and UPDATE renderers when no column is assigned.
	ErrNoColumns = errors.New("clause: no columns to assign")
)

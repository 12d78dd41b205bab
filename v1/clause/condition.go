package clause

import (
	"fmt"
	"strings"
)

// Condition is one boolean predicate of a WHERE clause. The implementations are Raw,
// Equals and Compare.
type Condition interface {
	isCondition()
}

// Equals renders `Column` = 'Value'.
type Equals struct {
	Column string
	Value  any
}

func (Equals) isCondition() {}

// Compare renders `Column` OPERATOR 'Value'. The operator is matched case-insensitively and
// written in upper case; a nil Value renders as NULL, so Compare{"c", "IS", nil} becomes
// `c` IS NULL.
type Compare struct {
	Column   string
	Operator string
	Value    any
}

func (Compare) isCondition() {}

// Eq is shorthand for Equals{Column: column, Value: value}.
func Eq(column string, value any) Equals {
	return Equals{Column: column, Value: value}
}

// Cmp is shorthand for Compare{Column: column, Operator: operator, Value: value}.
func Cmp(column, operator string, value any) Compare {
	return Compare{Column: column, Operator: operator, Value: value}
}

// IsNull renders `column` IS NULL.
func IsNull(column string) Compare {
	return Compare{Column: column, Operator: "IS", Value: nil}
}

// IsNotNull renders `column` IS NOT NULL.
func IsNotNull(column string) Compare {
	return Compare{Column: column, Operator: "IS NOT", Value: nil}
}

// In renders `column` IN ('v1', 'v2', ...).
func In(column string, values ...any) Compare {
	return Compare{Column: column, Operator: "IN", Value: values}
}

var operators = map[string]struct{}{
	"=":          {},
	"!=":         {},
	"<>":         {},
	"<":          {},
	"<=":         {},
	">":          {},
	">=":         {},
	"<=>":        {},
	"LIKE":       {},
	"NOT LIKE":   {},
	"IN":         {},
	"NOT IN":     {},
	"IS":         {},
	"IS NOT":     {},
	"REGEXP":     {},
	"NOT REGEXP": {},
	"RLIKE":      {},
}

// NormalizeOperator upper-cases operator, collapses inner whitespace and checks it against
// the supported operator set.
func NormalizeOperator(operator string) (string, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(operator), " "))
	if _, ok := operators[normalized]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperator, operator)
	}
	return normalized, nil
}

// Connector joins the conditions of a Where.
type Connector string

const (
	And Connector = "AND"
	Or  Connector = "OR"
)

// ParseConnector accepts "and" and "or" in any case. The empty string means And.
func ParseConnector(connector string) (Connector, error) {
	switch Connector(strings.ToUpper(strings.TrimSpace(connector))) {
	case "", And:
		return And, nil
	case Or:
		return Or, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidConnector, connector)
	}
}

// Where is a list of conditions joined by one connector.
type Where struct {
	Conditions []Condition
	Connector  Connector
}

// Match joins conditions with AND.
func Match(conditions ...Condition) Where {
	return Where{Conditions: conditions, Connector: And}
}

// MatchAny joins conditions with OR.
func MatchAny(conditions ...Condition) Where {
	return Where{Conditions: conditions, Connector: Or}
}

// IsEmpty reports whether w has no conditions.
func (w Where) IsEmpty() bool {
	return len(w.Conditions) == 0
}

// FormatWhere renders " WHERE <conditions>", or the empty string when w has no conditions.
func (b *Builder) FormatWhere(w Where) (string, error) {
	if w.IsEmpty() {
		return "", nil
	}

	list, err := b.FormatConditionList(w.Conditions, w.Connector)
	if err != nil {
		return "", err
	}

	return " WHERE " + list, nil
}

// FormatConditionList renders conditions joined by connector. An empty connector means AND.
func (b *Builder) FormatConditionList(conditions []Condition, connector Connector) (string, error) {
	connector, err := ParseConnector(string(connector))
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(conditions))
	for _, condition := range conditions {
		rendered, err := b.formatCondition(condition)
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}

	return strings.Join(parts, " "+string(connector)+" "), nil
}

func (b *Builder) formatCondition(condition Condition) (string, error) {
	switch c := condition.(type) {
	case Raw:
		return string(c), nil
	case Equals:
		if strings.TrimSpace(c.Column) == "" {
			return "", fmt.Errorf("%w: empty column", ErrMalformedCondition)
		}
		value, err := b.FormatValue(c.Value)
		if err != nil {
			return "", fmt.Errorf("condition on %q: %w", c.Column, err)
		}
		return quoteIdentifier(c.Column) + " = " + value, nil
	case Compare:
		if strings.TrimSpace(c.Column) == "" {
			return "", fmt.Errorf("%w: empty column", ErrMalformedCondition)
		}
		operator, err := NormalizeOperator(c.Operator)
		if err != nil {
			return "", err
		}
		value, err := b.FormatValue(c.Value)
		if err != nil {
			return "", fmt.Errorf("condition on %q: %w", c.Column, err)
		}
		return quoteIdentifier(c.Column) + " " + operator + " " + value, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrMalformedCondition, condition)
	}
}

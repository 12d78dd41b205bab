package clause

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// ParseCondition converts a loose condition entry:
//
//	[]any{"`a` = b"}         -> Raw
//	[]any{"age", 18}         -> Equals
//	[]any{"age", ">=", 18}   -> Compare
//
// Entries of any other length are rejected with ErrMalformedCondition.
func ParseCondition(entry []any) (Condition, error) {
	switch len(entry) {
	case 1:
		text, ok := entry[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: raw fragment must be a string, got %T", ErrMalformedCondition, entry[0])
		}
		return Raw(text), nil
	case 2:
		column, err := columnName(entry[0])
		if err != nil {
			return nil, err
		}
		return Eq(column, entry[1]), nil
	case 3:
		column, err := columnName(entry[0])
		if err != nil {
			return nil, err
		}
		operator, ok := entry[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: operator must be a string, got %T", ErrMalformedCondition, entry[1])
		}
		if _, err := NormalizeOperator(operator); err != nil {
			return nil, err
		}
		return Cmp(column, operator, entry[2]), nil
	default:
		return nil, fmt.Errorf("%w: %d elements", ErrMalformedCondition, len(entry))
	}
}

// ParseConditionList converts a list of loose entries. A flat entry whose first element is
// not itself a list is treated as a single condition:
//
//	ParseConditionList([]any{"age", ">", 18})                          // one condition
//	ParseConditionList([]any{[]any{"age", ">", 18}, []any{"active", 1}}) // two conditions
func ParseConditionList(input []any) ([]Condition, error) {
	if len(input) == 0 {
		return nil, nil
	}
	if _, nested := asList(input[0]); !nested {
		condition, err := ParseCondition(input)
		if err != nil {
			return nil, err
		}
		return []Condition{condition}, nil
	}

	conditions := make([]Condition, 0, len(input))
	for i, item := range input {
		entry, ok := asList(item)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is %T, not a list", ErrMalformedCondition, i, item)
		}
		condition, err := ParseCondition(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		conditions = append(conditions, condition)
	}
	return conditions, nil
}

// ParseWhere combines ParseConditionList and ParseConnector.
func ParseWhere(input []any, connector string) (Where, error) {
	parsedConnector, err := ParseConnector(connector)
	if err != nil {
		return Where{}, err
	}
	conditions, err := ParseConditionList(input)
	if err != nil {
		return Where{}, err
	}
	return Where{Conditions: conditions, Connector: parsedConnector}, nil
}

// ParseAttribute converts a loose attribute. A bare string is Raw text; a list becomes an
// Identifier; any other scalar becomes a one-segment Identifier.
func ParseAttribute(input any) (Attribute, error) {
	if text, ok := input.(string); ok {
		return Raw(text), nil
	}

	items, ok := asList(input)
	if !ok {
		items = []any{input}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty identifier", ErrMalformedAttribute)
	}

	segments := make(Identifier, 0, len(items))
	for _, item := range items {
		segment, err := cast.ToStringE(item)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %T", ErrMalformedAttribute, item)
		}
		segments = append(segments, segment)
	}
	return segments, nil
}

// ParseAttributeList converts each element with ParseAttribute.
func ParseAttributeList(input []any) ([]Attribute, error) {
	attributes := make([]Attribute, 0, len(input))
	for _, item := range input {
		attribute, err := ParseAttribute(item)
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, attribute)
	}
	return attributes, nil
}

func columnName(value any) (string, error) {
	column, ok := value.(string)
	if !ok || column == "" {
		return "", fmt.Errorf("%w: column must be a non-empty string, got %#v", ErrMalformedCondition, value)
	}
	return column, nil
}

// asList reports whether value is a slice or array (other than []byte) and returns its
// elements.
func asList(value any) ([]any, bool) {
	if list, ok := value.([]any); ok {
		return list, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}

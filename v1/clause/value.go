package clause

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	sqlNull = "NULL"

	dateTimeLayout     = "2006-01-02 15:04:05"
	dateTimeNanoLayout = "2006-01-02 15:04:05.999999"
)

// FormatValue renders a single value as an SQL literal.
//
// nil, typed nil pointers and the string "NULL" (any case) render as NULL. Slices and arrays
// render as a parenthesized list, see FormatValueList. Everything else is converted to a
// string, escaped and wrapped in single quotes:
//
//	b.FormatValue(18)        // '18'
//	b.FormatValue("O'Hara")  // 'O\'Hara'
//	b.FormatValue(true)      // '1'
//	b.FormatValue([]int{1,2}) // ('1', '2')
func (b *Builder) FormatValue(value any) (string, error) {
	if isNull(value) {
		return sqlNull, nil
	}

	switch v := value.(type) {
	case driver.Valuer:
		resolved, err := v.Value()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		return b.FormatValue(resolved)
	case []byte:
		return b.quote(string(v))
	case bool:
		if v {
			return b.quote("1")
		}
		return b.quote("0")
	case time.Time:
		return b.quote(formatTime(v))
	case []any:
		return b.FormatValueList(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return b.quote(string(rv.Bytes()))
		}
		values := make([]any, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return b.FormatValueList(values)
	case reflect.Pointer:
		return b.FormatValue(rv.Elem().Interface())
	}

	text, err := cast.ToStringE(basicValue(rv))
	if err != nil {
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}

	return b.quote(text)
}

// FormatValueList renders values as a parenthesized, comma separated list. An empty list
// renders as ().
func (b *Builder) FormatValueList(values []any) (string, error) {
	literals := make([]string, 0, len(values))
	for _, value := range values {
		literal, err := b.FormatValue(value)
		if err != nil {
			return "", err
		}
		literals = append(literals, literal)
	}

	return "(" + strings.Join(literals, ", ") + ")", nil
}

func isNull(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.EqualFold(s, sqlNull)
	}

	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// basicValue unwraps named types (type Status string) to their builtin kind so cast
// can render them.
func basicValue(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32:
		return float32(rv.Float())
	case reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		if rv.Bool() {
			return "1"
		}
		return "0"
	default:
		return rv.Interface()
	}
}

func formatTime(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format(dateTimeLayout)
	}
	return t.Format(dateTimeNanoLayout)
}

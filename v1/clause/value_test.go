package clause

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

type flag bool

func newTestBuilder() *Builder {
	return NewBuilder(MySQLEscaper)
}

// unescape reverses EscapeString for the interior of a quoted literal.
func unescape(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			out.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '0':
			out.WriteByte(0)
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 'Z':
			out.WriteByte(0x1a)
		default:
			out.WriteByte(s[i])
		}
	}
	return out.String()
}

func TestFormatValueNull(t *testing.T) {
	b := newTestBuilder()
	var nilPointer *int

	for _, value := range []any{nil, "NULL", "null", "NuLl", nilPointer, sql.NullString{}} {
		got, err := b.FormatValue(value)
		require.NoError(t, err)
		assert.Equal(t, "NULL", got, "value %#v", value)
	}
}

func TestFormatValueScalars(t *testing.T) {
	b := newTestBuilder()
	seven := 7

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "alice", `'alice'`},
		{"quote", "O'Hara", `'O\'Hara'`},
		{"int", 18, `'18'`},
		{"int64", int64(-3), `'-3'`},
		{"uint8", uint8(200), `'200'`},
		{"float", 1.5, `'1.5'`},
		{"true", true, `'1'`},
		{"false", false, `'0'`},
		{"bytes", []byte("raw"), `'raw'`},
		{"pointer", &seven, `'7'`},
		{"named string", status("active"), `'active'`},
		{"named bool", flag(true), `'1'`},
		{"valuer", sql.NullInt64{Int64: 9, Valid: true}, `'9'`},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), `'2024-01-02 03:04:05'`},
		{"time with fraction", time.Date(2024, 1, 2, 3, 4, 5, 500_000_000, time.UTC), `'2024-01-02 03:04:05.5'`},
		{"not null word", "NULLS", `'NULLS'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.FormatValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatValueList(t *testing.T) {
	b := newTestBuilder()

	t.Run("empty list", func(t *testing.T) {
		got, err := b.FormatValueList(nil)
		require.NoError(t, err)
		assert.Equal(t, "()", got)
	})

	t.Run("mixed list", func(t *testing.T) {
		got, err := b.FormatValueList([]any{1, "a", nil})
		require.NoError(t, err)
		assert.Equal(t, `('1', 'a', NULL)`, got)
	})

	t.Run("typed slice value", func(t *testing.T) {
		got, err := b.FormatValue([]string{"x", "y"})
		require.NoError(t, err)
		assert.Equal(t, `('x', 'y')`, got)
	})

	t.Run("nested list", func(t *testing.T) {
		got, err := b.FormatValue([]any{1, []any{2, 3}})
		require.NoError(t, err)
		assert.Equal(t, `('1', ('2', '3'))`, got)
	})
}

func TestFormatValueErrors(t *testing.T) {
	t.Run("no escaper", func(t *testing.T) {
		b := NewBuilder(nil)

		_, err := b.FormatValue("x")
		assert.ErrorIs(t, err, ErrNoEscaper)

		got, err := b.FormatValue(nil)
		require.NoError(t, err)
		assert.Equal(t, "NULL", got)
	})

	t.Run("escaper failure is returned", func(t *testing.T) {
		boom := errors.New("boom")
		b := NewBuilder(EscaperFunc(func(string) (string, error) { return "", boom }))

		_, err := b.FormatValue("x")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("unsupported value", func(t *testing.T) {
		_, err := newTestBuilder().FormatValue(map[string]int{"a": 1})
		assert.ErrorIs(t, err, ErrUnsupportedValue)
	})
}

func TestFormatValueRoundTrip(t *testing.T) {
	b := newTestBuilder()
	inputs := []string{
		"",
		"plain",
		"it's",
		`say "hi"`,
		`back\slash`,
		"line\nbreak\r\n",
		"nul\x00byte",
		"ctrl\x1az",
		`'; DROP TABLE users; --`,
		`\'`,
	}

	for _, input := range inputs {
		got, err := b.FormatValue(input)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(got, "'") && strings.HasSuffix(got, "'"), got)
		assert.Equal(t, input, unescape(got[1:len(got)-1]))
	}
}

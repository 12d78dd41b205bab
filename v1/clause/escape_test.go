package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeString(t *testing.T) {
	tests := map[string]string{
		"abc":    "abc",
		"a'b":    `a\'b`,
		`a"b`:    `a\"b`,
		`a\b`:    `a\\b`,
		"a\nb":   `a\nb`,
		"a\rb":   `a\rb`,
		"a\x00b": `a\0b`,
		"a\x1ab": `a\Zb`,
		`\'`:     `\\\'`,
		"ü ß":    "ü ß",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, EscapeString(input), "input %q", input)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`users`", quoteIdentifier("users"))
	assert.Equal(t, "`we``ird`", quoteIdentifier("we`ird"))
}

package clause

import "strings"

// Escaper escapes a string so that it can be placed between single quotes in a statement.
//
// *mariadb.MariaDB implements this interface.
type Escaper interface {
	Escape(input string) (string, error)
}

// EscaperFunc adapts a plain function to the Escaper interface.
type EscaperFunc func(input string) (string, error)

// Escape calls f(input).
func (f EscaperFunc) Escape(input string) (string, error) {
	return f(input)
}

// mysqlEscaper follows mysql_real_escape_string for the backslash-escaping sql modes.
var mysqlEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"'", "\\'",
	"\"", "\\\"",
	"\x00", "\\0",
	"\n", "\\n",
	"\r", "\\r",
	"\x1a", "\\Z",
)

// EscapeString escapes the characters MySQL treats specially inside a quoted string
// literal: NUL, newline, carriage return, backslash, both quote characters and Ctrl-Z.
func EscapeString(input string) string {
	return mysqlEscaper.Replace(input)
}

// MySQLEscaper is an Escaper backed by EscapeString. It never fails.
var MySQLEscaper Escaper = EscaperFunc(func(input string) (string, error) {
	return EscapeString(input), nil
})

// quoteIdentifier wraps name in backticks, doubling any backtick it contains.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

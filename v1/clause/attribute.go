package clause

import (
	"fmt"
	"regexp"
	"strings"
)

// Attribute is a column reference in an attribute list. It is either Raw text or an
// Identifier path.
type Attribute interface {
	isAttribute()
}

// Raw is caller-supplied SQL inserted without quoting or escaping. It can be used both as a
// Condition and as an Attribute; the caller is responsible for its safety.
type Raw string

func (Raw) isAttribute() {}
func (Raw) isCondition() {}

// Identifier is a column reference made of segments: an optional table, the column and any
// trailing keywords such as AS alias or a sort direction.
type Identifier []string

func (Identifier) isAttribute() {}

// Ident builds an Identifier from its segments.
func Ident(segments ...string) Identifier {
	return segments
}

var keywords = map[string]struct{}{
	"AS":   {},
	"ASC":  {},
	"DESC": {},
}

var plainAlias = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedWords are MySQL reserved words that cannot be used as a bare alias.
var reservedWords = map[string]struct{}{
	"ADD": {}, "ALL": {}, "ALTER": {}, "AND": {}, "AS": {}, "ASC": {}, "BETWEEN": {},
	"BY": {}, "CASE": {}, "CHECK": {}, "COLUMN": {}, "CONSTRAINT": {}, "CREATE": {},
	"CROSS": {}, "DATABASE": {}, "DEFAULT": {}, "DELETE": {}, "DESC": {}, "DISTINCT": {},
	"DROP": {}, "ELSE": {}, "EXISTS": {}, "FALSE": {}, "FOREIGN": {}, "FROM": {},
	"FULLTEXT": {}, "GROUP": {}, "GROUPS": {}, "HAVING": {}, "IF": {}, "IN": {},
	"INDEX": {}, "INNER": {}, "INSERT": {}, "INTERVAL": {}, "INTO": {}, "IS": {},
	"JOIN": {}, "KEY": {}, "KEYS": {}, "LEFT": {}, "LIKE": {}, "LIMIT": {}, "MATCH": {},
	"NOT": {}, "NULL": {}, "ON": {}, "OR": {}, "ORDER": {}, "OUTER": {}, "PRIMARY": {},
	"RANGE": {}, "RANK": {}, "READ": {}, "REFERENCES": {}, "REGEXP": {}, "RIGHT": {},
	"RLIKE": {}, "ROW": {}, "ROWS": {}, "SELECT": {}, "SET": {}, "TABLE": {}, "THEN": {},
	"TO": {}, "TRUE": {}, "UNION": {}, "UNIQUE": {}, "UPDATE": {}, "USING": {},
	"VALUES": {}, "WHEN": {}, "WHERE": {}, "WITH": {},
}

// bareAlias reports whether alias can follow AS without backticks.
func bareAlias(alias string) bool {
	if !plainAlias.MatchString(alias) {
		return false
	}
	_, reserved := reservedWords[strings.ToUpper(alias)]
	return !reserved
}

func isKeyword(segment string) bool {
	_, ok := keywords[strings.ToUpper(segment)]
	return ok
}

// FormatAttributeList renders attributes separated by ", ".
//
//	b.FormatAttributeList(clause.Ident("t", "c"))            // `t`.`c`
//	b.FormatAttributeList(clause.Ident("c", "AS", "alias"))  // `c` AS alias
//	b.FormatAttributeList(clause.Ident("c", "AS", "order"))  // `c` AS `order`
//	b.FormatAttributeList(clause.Ident("name", "DESC"))      // `name` DESC
//	b.FormatAttributeList(clause.Raw("COUNT(*)"))            // COUNT(*)
func (b *Builder) FormatAttributeList(attributes ...Attribute) (string, error) {
	parts := make([]string, 0, len(attributes))
	for _, attribute := range attributes {
		switch a := attribute.(type) {
		case Raw:
			parts = append(parts, string(a))
		case Identifier:
			rendered, err := formatIdentifier(a)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		default:
			return "", fmt.Errorf("%w: %T", ErrMalformedAttribute, attribute)
		}
	}

	return strings.Join(parts, ", "), nil
}

func formatIdentifier(segments Identifier) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: empty identifier", ErrMalformedAttribute)
	}

	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return "", fmt.Errorf("%w: empty identifier segment in %q", ErrMalformedAttribute, []string(segments))
		}
	}

	pieces := make([]string, 0, len(segments))
	for i := 0; i < len(segments); i++ {
		segment := segments[i]
		switch {
		case isKeyword(segment):
			pieces = append(pieces, strings.ToUpper(segment))
		case i > 0 && strings.EqualFold(segments[i-1], "AS") && bareAlias(segment):
			pieces = append(pieces, segment)
		case i+1 < len(segments) && !isKeyword(segments[i+1]):
			pieces = append(pieces, quoteIdentifier(segment)+"."+quoteIdentifier(segments[i+1]))
			i++
		default:
			pieces = append(pieces, quoteIdentifier(segment))
		}
	}

	return strings.Join(pieces, " "), nil
}

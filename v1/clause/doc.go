// Package clause renders typed condition, attribute and value descriptions into
// MySQL/MariaDB SQL text.
//
// The package has no connection of its own. A Builder is bound to an Escaper (usually a
// *mariadb.MariaDB) and every non-null scalar value passes through it before it is
// interpolated between single quotes.
//
// # Grammar
//
// Conditions are one of three variants:
//
//	clause.Raw("`deleted_at` IS NULL")    // inserted verbatim
//	clause.Eq("active", 1)                 // `active` = '1'
//	clause.Cmp("age", ">", 18)             // `age` > '18'
//	clause.IsNull("deleted_at")            // `deleted_at` IS NULL
//
// and are joined with a Connector inside a Where:
//
//	w := clause.Match(clause.Cmp("age", ">", 18), clause.Eq("active", 1))
//	sql, err := b.FormatWhere(w) // " WHERE `age` > '18' AND `active` = '1'"
//
// Attributes are either Raw text or an Identifier path. Identifier segments that are one of
// the keywords AS, ASC or DESC are written bare, two adjacent plain segments form a
// qualified `table`.`column` reference:
//
//	b.FormatAttributeList(clause.Ident("t", "c"))           // `t`.`c`
//	b.FormatAttributeList(clause.Ident("c", "AS", "alias")) // `c` AS alias
//
// # Loose form
//
// ParseCondition, ParseConditionList and ParseAttribute accept the untyped slice shapes
// ([raw], [column, value], [column, operator, value]) and convert them into the typed
// variants. Entries of any other shape are rejected with ErrMalformedCondition instead of
// being dropped from the statement.
//
// # Clauses
//
// Every Format* helper returns an empty string when its input is empty, so clauses can be
// concatenated unconditionally:
//
//	b.FormatOrderBy(clause.OrderBy{clause.Asc("name")}) // " ORDER BY `name` ASC"
//	b.FormatLimit(clause.Take(10))                        // " LIMIT 10"
//	b.FormatLimit(clause.Page(20, 10))                    // " LIMIT 20,10"
//
// # Thread Safety
//
// A Builder holds no mutable state and is safe for concurrent use as long as its Escaper
// is.
package clause

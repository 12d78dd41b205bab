package mariadb

import (
	"context"
	"database/sql"

	"github.com/Aleph-Alpha/dbal/v1/clause"
)

// Select runs SELECT * FROM `table` with the given WHERE, ORDER BY and LIMIT clauses. Empty
// clauses are left out. The caller must close the returned rows.
//
// Example:
//
//	rows, err := db.Select(ctx, "users",
//		clause.Match(clause.Cmp("age", ">", 18), clause.Eq("active", true)),
//		clause.OrderBy{clause.Asc("name")},
//		clause.Take(10),
//	)
func (m *MariaDB) Select(ctx context.Context, table string, where clause.Where, orderBy clause.OrderBy, limit clause.Limit) (*sql.Rows, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}

	query, err := m.builder.SelectStatement(table, where, orderBy, limit)
	if err != nil {
		return nil, err
	}

	return m.query(ctx, statement{operation: "select", table: table, sql: query})
}

// Insert adds one row and returns its auto-increment id.
//
// With no values nothing is sent and the returned id is invalid (Valid is false).
func (m *MariaDB) Insert(ctx context.Context, table string, values clause.Values) (sql.NullInt64, error) {
	if len(values) == 0 {
		return sql.NullInt64{}, nil
	}
	if err := m.ready(); err != nil {
		return sql.NullInt64{}, err
	}

	query, err := m.builder.InsertStatement(table, values)
	if err != nil {
		return sql.NullInt64{}, err
	}

	result, err := m.exec(ctx, statement{operation: "insert", table: table, sql: query})
	if err != nil {
		return sql.NullInt64{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return sql.NullInt64{}, newStatementError(query, err)
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}

// Update sets values on the rows matching where and returns the number of affected rows.
// An empty where updates every row. With no values nothing is sent.
func (m *MariaDB) Update(ctx context.Context, table string, values clause.Values, where clause.Where) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	if err := m.ready(); err != nil {
		return 0, err
	}

	query, err := m.builder.UpdateStatement(table, values, where)
	if err != nil {
		return 0, err
	}

	result, err := m.exec(ctx, statement{operation: "update", table: table, sql: query})
	if err != nil {
		return 0, err
	}
	return rowsAffected(query, result)
}

// Delete removes the rows whose attribute equals value and returns how many were removed.
func (m *MariaDB) Delete(ctx context.Context, table, attribute string, value any) (int64, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}

	query, err := m.builder.DeleteStatement(table, attribute, value)
	if err != nil {
		return 0, err
	}

	result, err := m.exec(ctx, statement{operation: "delete", table: table, subject: attribute, sql: query})
	if err != nil {
		return 0, err
	}
	return rowsAffected(query, result)
}

// Count returns COUNT(`attribute`) over the rows of table matching where. Rows where
// attribute is NULL are not counted.
func (m *MariaDB) Count(ctx context.Context, table, attribute string, where clause.Where) (int64, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}

	query, err := m.builder.CountStatement(table, attribute, where)
	if err != nil {
		return 0, err
	}

	rows, err := m.query(ctx, statement{operation: "count", table: table, subject: attribute, sql: query})
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, newStatementError(query, err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, newStatementError(query, err)
	}
	return count, nil
}

func rowsAffected(query string, result sql.Result) (int64, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, newStatementError(query, err)
	}
	return affected, nil
}

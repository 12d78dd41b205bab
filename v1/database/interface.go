package database

import (
	"context"
	"database/sql"

	"github.com/Aleph-Alpha/dbal/v1/clause"
)

// Client is the data-access contract application code depends on. *mariadb.MariaDB
// implements it.
type Client interface {
	// Select runs SELECT * FROM `table` with the given clauses; empty clauses are left out.
	Select(ctx context.Context, table string, where clause.Where, orderBy clause.OrderBy, limit clause.Limit) (*sql.Rows, error)

	// Insert adds one row and returns its id. With no values nothing is sent and the id
	// is not Valid.
	Insert(ctx context.Context, table string, values clause.Values) (sql.NullInt64, error)

	// Update returns the number of affected rows. With no values nothing is sent.
	Update(ctx context.Context, table string, values clause.Values, where clause.Where) (int64, error)

	// Delete removes rows whose attribute equals value.
	Delete(ctx context.Context, table, attribute string, value any) (int64, error)

	// Count returns COUNT(`attribute`) over the matching rows.
	Count(ctx context.Context, table, attribute string, where clause.Where) (int64, error)

	Query(ctx context.Context, sqlText string) (*sql.Rows, error)
	Exec(ctx context.Context, sqlText string) (sql.Result, error)

	LastQuery() string
	LastInsertID() int64

	Escape(input string) (string, error)
	Builder() *clause.Builder

	Ping(ctx context.Context) error
	GracefulShutdown() error
}

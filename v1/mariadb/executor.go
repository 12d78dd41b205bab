package mariadb

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/dbal/v1/observability"
)

// statement is one SQL text together with what it operates on, for logs, spans and the
// observer.
type statement struct {
	operation string
	table     string
	subject   string
	sql       string
}

func rawStatement(sqlText string) statement {
	operation := "query"
	if fields := strings.Fields(sqlText); len(fields) > 0 {
		operation = strings.ToLower(fields[0])
	}
	return statement{operation: operation, sql: sqlText}
}

// Query runs a statement that returns rows. The caller must close the returned rows.
//
// sqlText is recorded as the last query before it is sent. When the server rejects it the
// error is a *StatementError carrying the driver code, message and statement text.
func (m *MariaDB) Query(ctx context.Context, sqlText string) (*sql.Rows, error) {
	return m.query(ctx, rawStatement(sqlText))
}

// Exec runs a statement that does not return rows. A successful Exec updates LastInsertID.
//
// sqlText is recorded as the last query before it is sent. When the server rejects it the
// error is a *StatementError carrying the driver code, message and statement text.
func (m *MariaDB) Exec(ctx context.Context, sqlText string) (sql.Result, error) {
	return m.exec(ctx, rawStatement(sqlText))
}

// LastQuery returns the text of the most recently sent statement, including failed ones.
func (m *MariaDB) LastQuery() string {
	if m == nil {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastQuery
}

// LastInsertID returns the insert id reported by the most recent successful Exec.
func (m *MariaDB) LastInsertID() int64 {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastInsertID
}

func (m *MariaDB) query(ctx context.Context, st statement) (*sql.Rows, error) {
	if err := m.begin(st); err != nil {
		return nil, err
	}

	ctx, span := m.startSpan(ctx, st)
	defer span.End()

	start := time.Now()
	rows, err := m.sqlDB.QueryContext(ctx, st.sql)
	if err != nil {
		statementErr := newStatementError(st.sql, err)
		m.finish(span, st, start, statementErr, 0)
		return nil, statementErr
	}

	m.finish(span, st, start, nil, 0)
	return rows, nil
}

func (m *MariaDB) exec(ctx context.Context, st statement) (sql.Result, error) {
	if err := m.begin(st); err != nil {
		return nil, err
	}

	ctx, span := m.startSpan(ctx, st)
	defer span.End()

	start := time.Now()
	result, err := m.sqlDB.ExecContext(ctx, st.sql)
	if err != nil {
		statementErr := newStatementError(st.sql, err)
		m.finish(span, st, start, statementErr, 0)
		return nil, statementErr
	}

	if id, err := result.LastInsertId(); err == nil {
		m.mu.Lock()
		m.lastInsertID = id
		m.mu.Unlock()
	}

	var affected int64
	if n, err := result.RowsAffected(); err == nil {
		affected = n
	}

	m.finish(span, st, start, nil, affected)
	return result, nil
}

// begin checks the handle and records the statement text.
func (m *MariaDB) begin(st statement) error {
	if m == nil || m.sqlDB == nil {
		return ErrNotInitialized
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrNotInitialized
	}
	m.lastQuery = st.sql

	m.logger.Debug("Executing statement", nil, map[string]interface{}{
		"operation": st.operation,
		"table":     st.table,
		"statement": st.sql,
	})
	return nil
}

func (m *MariaDB) startSpan(ctx context.Context, st statement) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "mysql"),
		attribute.String("db.name", m.cfg.Connection.DbName),
		attribute.String("db.operation", st.operation),
		attribute.String("db.statement", st.sql),
	}
	if st.table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", st.table))
	}

	return m.tracer.Start(ctx, "mariadb."+st.operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// finish records the outcome on the span, the log and the observer.
func (m *MariaDB) finish(span trace.Span, st statement, start time.Time, err error, size int64) {
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.logger.Error("Statement failed", err, map[string]interface{}{
			"operation": st.operation,
			"table":     st.table,
			"statement": st.sql,
		})
	} else {
		span.SetAttributes(attribute.Int64("db.rows_affected", size))
	}

	if m.observer == nil {
		return
	}
	m.observer.ObserveOperation(observability.OperationContext{
		Component:   "mariadb",
		Operation:   st.operation,
		Resource:    st.table,
		SubResource: st.subject,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}

// Package mariadb provides a MariaDB/MySQL connection that builds SQL statements from
// typed clauses and runs them on a single pinned connection.
//
// The package is built on GORM with the go-sql-driver/mysql driver. Statements are rendered
// as text by the clause package, with every value escaped by the connection itself, and
// sent without parameter binding. The connection remembers the last statement it sent and
// the last insert id.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - NewMariaDB returns the concrete *MariaDB
//   - *MariaDB implements database.Client and clause.Escaper
//   - Logger and observability.Observer are the optional dependencies it accepts
//
// # Basic Usage
//
//	cfg := mariadb.NewConfig("localhost", "auth", "secret", "accounts")
//
//	db, err := mariadb.NewMariaDB(cfg, mariadb.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	rows, err := db.Select(ctx, "users",
//		clause.Match(clause.Cmp("age", ">", 18), clause.Eq("active", true)),
//		clause.OrderBy{clause.Asc("name")},
//		clause.Take(10),
//	)
//	// SELECT * FROM `users` WHERE `age` > '18' AND `active` = '1' ORDER BY `name` ASC LIMIT 10
//
//	id, err := db.Insert(ctx, "users", clause.Values{
//		clause.Set("name", "bob"),
//		clause.Set("email", "bob@example.com"),
//	})
//
//	affected, err := db.Update(ctx, "users",
//		clause.Values{clause.Set("active", false)},
//		clause.Match(clause.Eq("id", id.Int64)),
//	)
//
//	removed, err := db.Delete(ctx, "sessions", "token", token)
//	total, err := db.Count(ctx, "users", "id", clause.Where{})
//
// Insert and Update with no values send nothing: Insert then returns an id with Valid set
// to false and Update returns 0.
//
// # Shared Connection
//
// Applications that need one connection for the whole process keep it in an Instance:
//
//	var accounts = mariadb.NewInstance()
//
//	if err := accounts.Initialize(cfg); err != nil {
//		return err
//	}
//	db, err := accounts.Get()
//
// Initialize succeeds at most once. A failed Initialize leaves the Instance uninitialized,
// and Get returns ErrNotInitialized until a call succeeds.
//
// # Configuration
//
// Configuration can be built positionally with NewConfig, from named keys with
// ConfigFromMap, or from the environment with LoadConfig:
//
//	// MARIADB_CONNECTION__HOST=db.internal
//	// MARIADB_CONNECTION__USER=auth
//	// MARIADB_CONNECTION__PASSWORD=secret
//	// MARIADB_CONNECTION__DATABASE=accounts
//	cfg, err := mariadb.LoadConfig("MARIADB_", ".env")
//
// # Error Handling
//
// Statements rejected by the server return a *StatementError carrying the MySQL error
// number, the driver message and the statement text:
//
//	var statementErr *mariadb.StatementError
//	if errors.As(err, &statementErr) {
//		log.Error("query failed", err, map[string]interface{}{"query": statementErr.Query})
//	}
//
//	if errors.Is(mariadb.TranslateError(err), mariadb.ErrDuplicateKey) {
//		// handle unique constraint
//	}
//
// Errors from rendering clauses (for example clause.ErrInvalidOperator) are returned before
// anything is sent to the server.
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,  // optional, provides logger.Logger
//		metrics.FXModule, // optional, provides the observability.Observer
//		tracer.FXModule,  // optional, provides the trace.TracerProvider
//		mariadb.FXModule,
//		fx.Provide(
//			func() (mariadb.Config, error) { return mariadb.LoadConfig("MARIADB_") },
//		),
//	)
//
// The lifecycle hooks ping the server on start and close the connection on stop.
//
// # Observability
//
// Every statement is traced with an OpenTelemetry span, logged at debug level, and
// reported to the optional observability.Observer with the component "mariadb", the SQL
// verb as operation and the table as resource. Spans come from the provider passed to
// WithTracerProvider, or from the global provider when none is given.
package mariadb

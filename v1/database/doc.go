// Package database provides the driver-agnostic data-access contract.
//
// Application code depends on the Client interface; the mariadb package provides the
// implementation. Statements are described with the clause package:
//
//	import (
//	    "github.com/Aleph-Alpha/dbal/v1/clause"
//	    "github.com/Aleph-Alpha/dbal/v1/database"
//	)
//
//	type UserRepository struct {
//	    db database.Client
//	}
//
//	func (r *UserRepository) Active(ctx context.Context) (*sql.Rows, error) {
//	    return r.db.Select(ctx, "users",
//	        clause.Match(clause.Eq("active", true)),
//	        clause.OrderBy{clause.Asc("name")},
//	        clause.Limit{},
//	    )
//	}
//
// # Using with Fx Dependency Injection
//
// FXModule opens the database selected by Config and provides it as Client:
//
//	app := fx.New(
//	    database.FXModule,
//	    fx.Provide(func() (database.Config, error) {
//	        cfg, err := mariadb.LoadConfig("MARIADB_")
//	        return database.MariaDBConfig(cfg), err
//	    }),
//	    fx.Invoke(func(db database.Client) {
//	        // Use db...
//	    }),
//	)
//
// Applications that already use mariadb.FXModule can expose the connection as a Client
// instead:
//
//	fx.Provide(func(db *mariadb.MariaDB) database.Client { return db })
//
// # Error Handling
//
// Failed statements return *mariadb.StatementError. Use mariadb.TranslateError to map
// server errors to sentinels:
//
//	_, err := db.Insert(ctx, "users", values)
//	switch {
//	case errors.Is(mariadb.TranslateError(err), mariadb.ErrDuplicateKey):
//	    // Handle duplicate
//	case err != nil:
//	    return err
//	}
//
// # Testing
//
// Embed the interface in a stub and override only what the test needs:
//
//	type stubDB struct {
//	    database.Client
//	    count int64
//	}
//
//	func (s *stubDB) Count(context.Context, string, string, clause.Where) (int64, error) {
//	    return s.count, nil
//	}
package database

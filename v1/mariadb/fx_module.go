package mariadb

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Aleph-Alpha/dbal/v1/logger"
	"github.com/Aleph-Alpha/dbal/v1/observability"
)

// FXModule is an fx module that provides the MariaDB connection.
// It registers the constructor for dependency injection and sets up lifecycle hooks that
// verify the connection on start and close it on stop.
var FXModule = fx.Module("mariadb",
	fx.Provide(
		NewMariaDBClientWithDI,
	),
	fx.Invoke(RegisterMariaDBLifecycle),
)

// MariaDBParams groups the dependencies needed to create a MariaDB connection via
// dependency injection. Everything except Config is optional; a provided Dialector
// replaces the one built from Config.
type MariaDBParams struct {
	fx.In

	Config    Config
	Logger    logger.Logger          `optional:"true"`
	Observer  observability.Observer `optional:"true"`
	Dialector gorm.Dialector         `optional:"true"`

	TracerProvider trace.TracerProvider `optional:"true"`
}

// NewMariaDBClientWithDI creates a MariaDB connection from injected dependencies.
//
// Example usage with fx:
//
//	app := fx.New(
//	    mariadb.FXModule,
//	    fx.Provide(
//	        func() (mariadb.Config, error) {
//	            return mariadb.LoadConfig("MARIADB_")
//	        },
//	    ),
//	)
func NewMariaDBClientWithDI(params MariaDBParams) (*MariaDB, error) {
	return NewMariaDB(params.Config,
		WithLogger(params.Logger),
		WithObserver(params.Observer),
		WithDialector(params.Dialector),
		WithTracerProvider(params.TracerProvider),
	)
}

// MariaDBLifeCycleParams groups the dependencies needed for MariaDB lifecycle management.
type MariaDBLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	MariaDB   *MariaDB
}

// RegisterMariaDBLifecycle pings the server when the application starts and closes the
// connection when it stops.
func RegisterMariaDBLifecycle(params MariaDBLifeCycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return params.MariaDB.Ping(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return params.MariaDB.GracefulShutdown()
		},
	})
}

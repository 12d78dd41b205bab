package database

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/dbal/v1/logger"
	"github.com/Aleph-Alpha/dbal/v1/mariadb"
	"github.com/Aleph-Alpha/dbal/v1/observability"
)

// FXModule provides a Client chosen by Config.Type. Use it instead of mariadb.FXModule,
// not together with it: each module opens its own connection.
var FXModule = fx.Module("database",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// DatabaseParams groups the dependencies needed to create a Client. Everything except
// Config is optional.
type DatabaseParams struct {
	fx.In

	Config         Config
	Logger         logger.Logger          `optional:"true"`
	Observer       observability.Observer `optional:"true"`
	TracerProvider trace.TracerProvider   `optional:"true"`
}

// DatabaseLifecycleParams groups the dependencies needed for lifecycle management.
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    Client
	Logger    logger.Logger `optional:"true"`
}

// NewClientWithDI opens the database selected by params.Config.Type.
func NewClientWithDI(params DatabaseParams) (Client, error) {
	switch strings.ToLower(params.Config.Type) {
	case "mariadb", "mysql":
		if params.Config.MariaDB == nil {
			return nil, fmt.Errorf("mariadb config is required when type=%s", params.Config.Type)
		}
		db, err := mariadb.NewMariaDB(*params.Config.MariaDB,
			mariadb.WithLogger(params.Logger),
			mariadb.WithObserver(params.Observer),
			mariadb.WithTracerProvider(params.TracerProvider),
		)
		if err != nil {
			return nil, err
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %q (must be 'mariadb' or 'mysql')", params.Config.Type)
	}
}

// RegisterDatabaseLifecycle pings the database on start and shuts the client down on stop.
func RegisterDatabaseLifecycle(params DatabaseLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.Ping(ctx); err != nil {
				return err
			}
			if params.Logger != nil {
				params.Logger.Info("Database client initialized", nil, nil)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("Shutting down database client", nil, nil)
			}
			return params.Client.GracefulShutdown()
		},
	})
}

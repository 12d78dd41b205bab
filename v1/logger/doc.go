// Package logger provides the zap-based structured logger used across dbal.
//
// *LoggerClient satisfies the Logger interfaces declared by mariadb, database and
// tracer, so one instance can be handed to every package. Entries are JSON with ISO8601
// timestamps; errors go to the "error" field and every map passed as fields is
// flattened into the entry.
//
// # Architecture
//
//   - Logger interface: the logging contract, including the *WithContext variants
//   - LoggerClient struct: zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FX module: provides *LoggerClient and Logger, and syncs the logger on stop
//
// # Direct Usage (Without FX)
//
//	import "github.com/Aleph-Alpha/dbal/v1/logger"
//
//	log, err := logger.NewLoggerClient(logger.Config{
//		Level:       "debug",
//		ServiceName: "accounts",
//	})
//	if err != nil {
//		return err
//	}
//
//	db, err := mariadb.NewMariaDB(cfg, mariadb.WithLogger(log))
//
// With level "debug" every executed statement is logged as "Executing statement"
// together with its SQL text; failed statements are logged at error level.
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		mariadb.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: "info", EnableTracing: true, ServiceName: "accounts"}
//		}),
//	)
//
// # Tracing Integration
//
// With EnableTracing set, the *WithContext methods add trace_id and span_id taken from
// the span in the context:
//
//	log.InfoWithContext(ctx, "Password changed", nil, map[string]interface{}{"user_id": 42})
//
// # Configuration
//
//	LOGGER__LEVEL=debug            # debug, info, warning or error
//	LOGGER__ENABLE_TRACING=true
//	LOGGER__SERVICE_NAME=accounts
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package logger

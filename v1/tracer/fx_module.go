package tracer

import (
	"context"

	traceapi "go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/dbal/v1/logger"
)

// FXModule provides the *Tracer and its trace.TracerProvider, and flushes pending spans
// when the application stops. mariadb.FXModule picks the provider up automatically.
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    mariadb.FXModule,
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{ServiceName: "accounts", AppEnv: "production"}
//	    }),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
		ProvideTracerProvider,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies of NewClientWithDI. The logger is optional.
type TracerParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewClientWithDI creates the tracer from injected dependencies.
func NewClientWithDI(params TracerParams) (*Tracer, error) {
	return NewClient(params.Config, params.Logger)
}

// ProvideTracerProvider exposes the tracer's provider as trace.TracerProvider.
func ProvideTracerProvider(t *Tracer) traceapi.TracerProvider {
	return t.Provider()
}

// RegisterTracerLifecycle shuts the provider down on stop so buffered spans reach the
// exporter.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer.logger != nil {
				tracer.logger.Info("shutting down tracer...", nil, nil)
			}
			return tracer.Shutdown(ctx)
		},
	})
}

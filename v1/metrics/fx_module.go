package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/dbal/v1/logger"
	"github.com/Aleph-Alpha/dbal/v1/observability"
)

// FXModule provides *Metrics, the MetricsCollector interface and an
// observability.Observer, and runs the /metrics server for the lifetime of the app.
// Because it provides an Observer, mariadb.FXModule picks it up automatically.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		ProvideCollector,
		ProvideObserver,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// ProvideCollector exposes *Metrics as MetricsCollector.
func ProvideCollector(m *Metrics) MetricsCollector {
	return m
}

// ProvideObserver exposes *Metrics as observability.Observer.
func ProvideObserver(m *Metrics) observability.Observer {
	return m
}

// MetricsLifecycleParams groups the dependencies of RegisterMetricsLifecycle. The logger
// is optional.
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle starts the /metrics server on start and shuts it down on stop.
// The listener is opened synchronously so that an address already in use fails the start.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	m := params.Metrics
	log := params.Logger

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", m.Server.Addr)
			if err != nil {
				return err
			}

			if log != nil {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": listener.Addr().String(),
				})
			}

			go func() {
				if err := m.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) && log != nil {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if log != nil {
				log.Info("Shutting down Prometheus metrics server", nil, nil)
			}
			return m.Server.Shutdown(ctx)
		},
	})
}

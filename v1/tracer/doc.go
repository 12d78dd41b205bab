// Package tracer provides distributed tracing using OpenTelemetry.
//
// It sets up an SDK TracerProvider with service resource attributes, optionally exports
// spans over OTLP/HTTP, and installs the W3C trace context and baggage propagators.
// The provider is meant to be handed to mariadb.WithTracerProvider, which creates a
// client span named "mariadb.<operation>" for every statement.
//
// Basic Usage:
//
//	import (
//		"github.com/Aleph-Alpha/dbal/v1/logger"
//		"github.com/Aleph-Alpha/dbal/v1/mariadb"
//		"github.com/Aleph-Alpha/dbal/v1/tracer"
//	)
//
//	log, _ := logger.NewLoggerClient(logger.Config{Level: "info"})
//
//	tr, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "accounts",
//		AppEnv:       "development",
//		EnableExport: true,
//		Endpoint:     "otel-collector:4318",
//		Insecure:     true,
//	}, log)
//
//	db, err := mariadb.NewMariaDB(cfg, mariadb.WithTracerProvider(tr.Provider()))
//
//	ctx, span := tr.StartSpan(ctx, "accounts.change-password")
//	defer span.End()
//
// Distributed Tracing Across Services:
//
//	// outgoing
//	for k, v := range tr.GetCarrier(ctx) {
//		req.Header.Set(k, v)
//	}
//
//	// incoming
//	ctx := tr.SetCarrierOnContext(r.Context(), headers)
//
// FX Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		tracer.FXModule,
//		mariadb.FXModule,
//		fx.Provide(func() tracer.Config { return cfg }),
//	)
//
// Configuration:
//
//	TRACER__SERVICE_NAME=accounts
//	TRACER__APP_ENV=production
//	TRACER__ENABLE_EXPORT=true
//	TRACER__ENDPOINT=otel-collector:4318
//	TRACER__INSECURE=true
package tracer

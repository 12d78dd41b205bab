package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aleph-Alpha/dbal/v1/clause"
	"github.com/Aleph-Alpha/dbal/v1/observability"
)

const tracerName = "github.com/Aleph-Alpha/dbal/v1/mariadb"

// Logger defines the interface for logging operations within the mariadb package.
// It matches the methods of *logger.LoggerClient.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=mariadb
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// MariaDB is a connection to a MariaDB/MySQL server pinned to a single open connection.
// It renders clause values through its own escaper, executes statements and remembers the
// last statement text and insert id.
//
// A MariaDB must not be copied after creation; use it through the pointer returned by
// NewMariaDB or Instance.Get.
type MariaDB struct {
	noCopy noCopy

	client  *gorm.DB
	sqlDB   *sql.DB
	cfg     Config
	builder *clause.Builder

	logger   Logger
	observer observability.Observer
	tracer   trace.Tracer

	// mu guards the fields below
	mu           sync.RWMutex
	closed       bool
	lastQuery    string
	lastInsertID int64

	closeOnce sync.Once
}

// Option customizes NewMariaDB.
type Option func(*options)

type options struct {
	dialector gorm.Dialector
	logger    Logger
	observer  observability.Observer
	tracing   trace.TracerProvider
}

// WithLogger sets the logger used for connection and statement logs.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver sets an observer that is notified after every statement.
func WithObserver(observer observability.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithTracerProvider sets the provider statement spans are created from. Without it the
// global provider installed by otel.SetTracerProvider is used.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *options) {
		o.tracing = provider
	}
}

// WithDialector replaces the MySQL dialector built from the Config DSN. It is mainly used
// to run against an existing *sql.DB, for example one created by go-sqlmock:
//
//	db, mock, _ := sqlmock.New()
//	conn, err := mariadb.NewMariaDB(cfg, mariadb.WithDialector(mysql.New(mysql.Config{
//		Conn:                      db,
//		SkipInitializeWithVersion: true,
//	})))
func WithDialector(dialector gorm.Dialector) Option {
	return func(o *options) {
		o.dialector = dialector
	}
}

// NewMariaDB validates cfg, opens the connection and returns the ready handle.
//
// Validation failures wrap ErrInvalidConfig; failures to reach the server wrap
// ErrConnectionFailed together with the driver error.
//
// Example:
//
//	db, err := mariadb.NewMariaDB(mariadb.NewConfig("localhost", "auth", "secret", "accounts"))
//	if err != nil {
//		return err
//	}
//	defer db.Close()
func NewMariaDB(cfg Config, opts ...Option) (*MariaDB, error) {
	o := options{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracing == nil {
		o.tracing = otel.GetTracerProvider()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialector := o.dialector
	if dialector == nil {
		dsn, err := cfg.DSN()
		if err != nil {
			return nil, err
		}
		dialector = gormmysql.Open(dsn)
	}

	client, sqlDB, err := connectToMariaDB(dialector, cfg)
	if err != nil {
		o.logger.Error("Failed to connect to MariaDB/MySQL database", err, map[string]interface{}{
			"host":     cfg.Connection.Host,
			"database": cfg.Connection.DbName,
		})
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	m := &MariaDB{
		client:   client,
		sqlDB:    sqlDB,
		cfg:      cfg,
		logger:   o.logger,
		observer: o.observer,
		tracer:   o.tracing.Tracer(tracerName),
	}
	m.builder = clause.NewBuilder(m)

	m.logger.Info("Successfully connected to MariaDB/MySQL database", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"database": cfg.Connection.DbName,
	})

	return m, nil
}

// connectToMariaDB opens the GORM handle and pins its pool to one connection.
func connectToMariaDB(dialector gorm.Dialector, cfg Config) (*gorm.DB, *sql.DB, error) {
	client, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := client.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get MariaDB/MySQL database instance: %w", err)
	}

	connMaxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = DefaultConnMaxLifetime
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	if cfg.ConnectionDetails.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnectionDetails.ConnMaxIdleTime)
	}

	return client, sqlDB, nil
}

// ready returns ErrNotInitialized for a nil or closed handle.
func (m *MariaDB) ready() error {
	if m == nil || m.sqlDB == nil {
		return ErrNotInitialized
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrNotInitialized
	}
	return nil
}

// Escape escapes input for use inside a single-quoted string literal. It implements
// clause.Escaper and is the escaper of Builder.
func (m *MariaDB) Escape(input string) (string, error) {
	if err := m.ready(); err != nil {
		return "", err
	}
	return clause.EscapeString(input), nil
}

// Builder returns the clause builder bound to this connection's escaper.
func (m *MariaDB) Builder() *clause.Builder {
	if m == nil {
		return clause.NewBuilder(nil)
	}
	return m.builder
}

// DatabaseName returns the name of the database selected on connect.
func (m *MariaDB) DatabaseName() string {
	if m == nil {
		return ""
	}
	return m.cfg.Connection.DbName
}

// DB returns the underlying GORM handle.
func (m *MariaDB) DB() *gorm.DB {
	if m == nil {
		return nil
	}
	return m.client
}

// Ping verifies that the connection is still alive.
func (m *MariaDB) Ping(ctx context.Context) error {
	if err := m.ready(); err != nil {
		return err
	}
	if err := m.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return nil
}

// Close closes the connection. Later calls are no-ops; every other method then returns
// ErrNotInitialized.
func (m *MariaDB) Close() error {
	if m == nil || m.sqlDB == nil {
		return nil
	}

	var err error
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()

		m.logger.Info("closing MariaDB/MySQL connection...", nil, nil)
		err = m.sqlDB.Close()
	})
	return err
}

// GracefulShutdown closes the connection. It exists so *MariaDB can be managed like the
// other std clients.
func (m *MariaDB) GracefulShutdown() error {
	return m.Close()
}

// noCopy may be embedded into structs which must not be copied after first use.
// go vet's copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}

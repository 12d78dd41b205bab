package mariadb

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultPort            = 3306
	DefaultCharset         = "utf8mb4"
	DefaultLoc             = "Local"
	DefaultConnMaxLifetime = time.Minute

	// DefaultEnvPrefix is the environment prefix LoadConfig uses when none is given.
	DefaultEnvPrefix = "MARIADB_"

	passwordKey = "connection.password"
)

var errMissingPassword = fmt.Errorf("%w: password is missing", ErrInvalidConfig)

// Config defines the top-level configuration for MariaDB/MySQL.
type Config struct {
	// Connection contains the parameters needed to reach the server.
	Connection Connection `koanf:"connection" validate:"required"`

	// ConnectionDetails tunes the lifetime of the single pinned connection.
	ConnectionDetails ConnectionDetails `koanf:"connection_details"`
}

// Connection holds the server address, credentials and driver parameters.
type Connection struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"omitempty,min=1,max=65535"`
	User     string `koanf:"user" validate:"required"`
	// Password may be empty for accounts without one.
	Password string `koanf:"password"`
	DbName   string `koanf:"database" validate:"required"`

	// Charset defaults to utf8mb4.
	Charset string `koanf:"charset"`

	// ParseTime makes the driver scan DATE and DATETIME columns into time.Time.
	ParseTime bool `koanf:"parse_time"`

	// Loc is the time zone name used when ParseTime is set. Defaults to Local.
	Loc string `koanf:"loc"`

	// TLS is the driver's tls parameter: "true", "false", "skip-verify", "preferred" or the
	// name of a registered tls.Config.
	TLS string `koanf:"tls"`

	Timeout      time.Duration `koanf:"timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// ConnectionDetails configures connection recycling. The pool itself is always pinned to a
// single open connection.
type ConnectionDetails struct {
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"gte=0"`
}

// NewConfig builds a Config from positional connection parameters.
func NewConfig(host, user, password, database string) Config {
	return Config{
		Connection: Connection{
			Host:     host,
			Port:     DefaultPort,
			User:     user,
			Password: password,
			DbName:   database,
		},
	}
}

// ConfigFromMap overlays named connection parameters on base. Recognized keys are host,
// port, user, password and database, plus the optional driver parameters of Connection
// (charset, parse_time, loc, tls, timeout, read_timeout, write_timeout). Keys are matched
// case-insensitively; values from the map win over base. An empty password is accepted,
// but the password key must be present unless base already carries one.
//
//	cfg, err := mariadb.ConfigFromMap(map[string]any{
//		"host":     "db.internal",
//		"user":     "auth",
//		"password": "secret",
//		"database": "accounts",
//	}, mariadb.Config{})
func ConfigFromMap(values map[string]any, base Config) (Config, error) {
	nested := make(map[string]interface{}, len(values))
	for key, value := range values {
		nested["connection."+strings.ToLower(strings.TrimSpace(key))] = value
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(nested, "."), nil); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if !k.Exists(passwordKey) && base.Connection.Password == "" {
		return Config{}, errMissingPassword
	}

	cfg := base
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadConfig reads the configuration from environment variables. Nested keys are separated
// by a double underscore, so with the prefix MARIADB_ the variable
// MARIADB_CONNECTION__HOST sets Connection.Host and MARIADB_CONNECTION_DETAILS__CONN_MAX_LIFETIME
// sets ConnectionDetails.ConnMaxLifetime. An empty prefix means DefaultEnvPrefix.
//
// Any envFiles are loaded into the process environment first; variables that are already
// set are not overridden. The returned Config is validated. The password variable must be
// set, though it may be empty.
func LoadConfig(prefix string, envFiles ...string) (Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("%w: loading env files: %w", ErrInvalidConfig, err)
		}
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Config{Connection: Connection{Port: DefaultPort}}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if !k.Exists(passwordKey) {
		return Config{}, errMissingPassword
	}
	return cfg, nil
}

// Validate checks the required connection parameters.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DSN renders the go-sql-driver data source name for c, filling in defaults for the port,
// charset and time zone.
func (c Config) DSN() (string, error) {
	conn := c.Connection

	port := conn.Port
	if port == 0 {
		port = DefaultPort
	}
	charset := conn.Charset
	if charset == "" {
		charset = DefaultCharset
	}
	locName := conn.Loc
	if locName == "" {
		locName = DefaultLoc
	}
	loc, err := time.LoadLocation(locName)
	if err != nil {
		return "", fmt.Errorf("%w: loc %q: %w", ErrInvalidConfig, locName, err)
	}

	dsn := mysql.NewConfig()
	dsn.User = conn.User
	dsn.Passwd = conn.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(conn.Host, strconv.Itoa(port))
	dsn.DBName = conn.DbName
	dsn.ParseTime = conn.ParseTime
	dsn.Loc = loc
	dsn.TLSConfig = conn.TLS
	dsn.Timeout = conn.Timeout
	dsn.ReadTimeout = conn.ReadTimeout
	dsn.WriteTimeout = conn.WriteTimeout
	dsn.Params = map[string]string{"charset": charset}

	return dsn.FormatDSN(), nil
}

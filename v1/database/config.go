package database

import (
	"github.com/Aleph-Alpha/dbal/v1/mariadb"
)

// Config selects and configures the database implementation.
type Config struct {
	// Type is the implementation name: "mariadb" or its alias "mysql".
	Type string

	// MariaDB is required when Type is "mariadb" or "mysql".
	MariaDB *mariadb.Config
}

// MariaDBConfig returns a Config that selects the MariaDB/MySQL implementation.
func MariaDBConfig(cfg mariadb.Config) Config {
	return Config{
		Type:    "mariadb",
		MariaDB: &cfg,
	}
}

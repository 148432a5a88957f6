// Package qkconfig reads a querykit connection/pool configuration from a
// TOML file, in the same BurntSushi/toml decode-into-struct style
// Pieczasz-smf's internal/parser/toml package uses for its schema format.
package qkconfig

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level connection configuration document.
type Config struct {
	Connection ConnectionConfig `toml:"connection"`
	Pool       PoolConfig       `toml:"pool"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ConnectionConfig names the backend and its DSN.
type ConnectionConfig struct {
	// Backend is "postgres", "mysql", or "sqlite".
	Backend string `toml:"backend"`
	// DSN is the backend-native connection string.
	DSN string `toml:"dsn"`
}

// PoolConfig mirrors the knobs every database/sql-backed pool exposes.
type PoolConfig struct {
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `toml:"conn_max_idle_time"`
	// StatementCacheSize bounds the prepared-statement cache keyed by
	// QueryId; 0 disables caching.
	StatementCacheSize int `toml:"statement_cache_size"`
}

// LoggingConfig controls the query/transaction logger.
type LoggingConfig struct {
	Level        string `toml:"level"`
	LogAllQueries bool  `toml:"log_all_queries"`
}

// defaultPool matches the zero-config behavior a fresh connection pool
// should have if the TOML document omits [pool] entirely.
func defaultPool() PoolConfig {
	return PoolConfig{
		MaxOpenConns:       10,
		MaxIdleConns:       2,
		ConnMaxLifetime:    time.Hour,
		StatementCacheSize: 256,
	}
}

// LoadFile opens path and decodes it as a Config.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("qkconfig: open %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a Config from r, filling [pool] defaults for any field the
// document omitted.
func Load(r io.Reader) (*Config, error) {
	cfg := Config{Pool: defaultPool()}
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("qkconfig: decode: %w", err)
	}
	if cfg.Connection.Backend == "" {
		return nil, fmt.Errorf("qkconfig: [connection].backend is required")
	}
	if cfg.Connection.DSN == "" {
		return nil, fmt.Errorf("qkconfig: [connection].dsn is required")
	}
	return &cfg, nil
}

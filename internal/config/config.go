package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	envPrefix = "CORNERSTONE_"
)

// Config holds all configuration for the cornerstone service
type Config struct {
	Driver            string     `yaml:"driver"`
	DBPath            string     `yaml:"db_path"`
	DSN               string     `yaml:"dsn"`
	Port              string     `yaml:"port"`
	Debug             bool       `yaml:"debug"`
	SkipIdentityCheck bool       `yaml:"skip_identity_check"`
	Pool              PoolConfig `yaml:"pool"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Driver: DriverSQLite,
		DBPath: "~/cornerstone/data/cornerstone.db",
		Port:   "8080",
		Pool:   DefaultPoolConfig(),
	}
}

// Load builds a Config from defaults, the optional YAML file at path, a .env
// file in the working directory and CORNERSTONE_* environment variables, in
// increasing order of precedence.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// godotenv never overrides variables already present in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(c.expandPath(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"DRIVER":  &c.Driver,
		"DB_PATH": &c.DBPath,
		"DSN":     &c.DSN,
		"PORT":    &c.Port,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"DEBUG":               &c.Debug,
		"SKIP_IDENTITY_CHECK": &c.SkipIdentityCheck,
	}
	for name, dst := range bools {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = b
	}

	ints := map[string]*int{
		"DB_MAX_OPEN_CONNS": &c.Pool.MaxOpenConns,
		"DB_MAX_IDLE_CONNS": &c.Pool.MaxIdleConns,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		"DB_CONN_MAX_LIFETIME":  &c.Pool.ConnMaxLifetime,
		"DB_CONN_MAX_IDLE_TIME": &c.Pool.ConnMaxIdleTime,
	}
	for name, dst := range durations {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}

	return nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("db_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DSN) == "" {
			return errors.New("dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}

	if c.Pool.MaxOpenConns < 0 || c.Pool.MaxIdleConns < 0 {
		return errors.New("pool connection limits must not be negative")
	}

	return nil
}

// expandPath expands ~ to home directory
func (c *Config) expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Return original path if we can't get home dir
		return path
	}

	return filepath.Join(homeDir, path[2:])
}

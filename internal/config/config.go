package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel string         `yaml:"log_level"`
	Database DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	SSLMode       string `yaml:"sslmode"`
	AdminUser     string `yaml:"admin_user"`
	AdminPassword string `yaml:"admin_password"`
	SQLitePath    string `yaml:"sqlite_path"`
	MaxOpenConns  int    `yaml:"max_open_conns"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Database: DatabaseConfig{
			Driver:       DriverPostgres,
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Name:         "loglan",
			SSLMode:      "disable",
			SQLitePath:   "loglan.db",
			MaxOpenConns: 25,
		},
	}
}

// Load reads .env (if present), then the optional YAML file, then the
// environment. Later sources win.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = envString("LOG_LEVEL", c.LogLevel)

	db := &c.Database
	db.Driver = envString("DB_DRIVER", db.Driver)
	db.Host = envString("DB_HOST", db.Host)
	db.Port = envString("DB_PORT", db.Port)
	db.User = envString("DB_USERNAME", db.User)
	db.Password = envString("DB_PASSWORD", db.Password)
	db.Name = envString("DB_DATABASE", db.Name)
	db.SSLMode = envString("DB_SSLMODE", db.SSLMode)
	db.AdminUser = envString("DB_ADMIN_USER", db.AdminUser)
	db.AdminPassword = envString("DB_ADMIN_PASSWORD", db.AdminPassword)
	db.SQLitePath = envString("SQLITE_PATH", db.SQLitePath)
	db.MaxOpenConns = envInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("%w: postgres requires DB_HOST and DB_DATABASE", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite requires SQLITE_PATH", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	return nil
}

// DSN is the gorm postgres connection string. It is a URL so that empty
// passwords and passwords with spaces survive parsing.
func (d DatabaseConfig) DSN() string {
	u := d.connURL(d.User, d.Password, d.Name)
	q := u.Query()
	q.Set("TimeZone", "UTC")
	u.RawQuery = q.Encode()
	return u.String()
}

// AdminURL points at the maintenance database with admin credentials.
// It falls back to the regular user when no admin is configured.
func (d DatabaseConfig) AdminURL() string {
	user, password := d.AdminUser, d.AdminPassword
	if user == "" {
		user, password = d.User, d.Password
	}
	u := d.connURL(user, password, "postgres")
	return u.String()
}

// URL is the pgx connection URL of the dictionary database.
func (d DatabaseConfig) URL() string {
	u := d.connURL(d.User, d.Password, d.Name)
	return u.String()
}

func (d DatabaseConfig) connURL(user, password, dbname string) *url.URL {
	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + dbname,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
}

func envString(key, def string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return val
}

func envInt(key string, def int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}

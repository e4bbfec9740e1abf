package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DPSServer holds all configuration for the DPS calculation service.
type DPSServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Logging: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Game data directory with operators.yaml and enemies.yaml.
	// Empty means the data compiled into the binary.
	DataDir string `yaml:"data_dir"`

	// HTTP limits
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`

	Sweep SweepConfig `yaml:"sweep"`
	Cache CacheConfig `yaml:"cache"`

	// Database (used only when the cache is enabled)
	Database DatabaseConfig `yaml:"database"`
}

// SweepConfig bounds range sweeps.
type SweepConfig struct {
	MaxGridPoints int `yaml:"max_grid_points"`
	Workers       int `yaml:"workers"` // 0 = GOMAXPROCS
}

// CacheConfig controls the PostgreSQL result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Addr returns the listen address.
func (c DPSServer) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// DefaultDPSServer returns DPSServer config with sensible defaults.
func DefaultDPSServer() DPSServer {
	return DPSServer{
		BindAddress:  "0.0.0.0",
		Port:         8080,
		LogLevel:     "info",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		MaxBodyBytes: 1 << 20,
		Sweep: SweepConfig{
			MaxGridPoints: 20000,
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "arkdps",
			Password: "arkdps",
			DBName:   "arkdps",
			SSLMode:  "disable",
		},
	}
}

// LoadDPSServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadDPSServer(path string) (DPSServer, error) {
	cfg := DefaultDPSServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c DPSServer) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.Sweep.MaxGridPoints <= 0 {
		return fmt.Errorf("sweep.max_grid_points must be positive, got %d", c.Sweep.MaxGridPoints)
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("sweep.workers is negative: %d", c.Sweep.Workers)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when the cache is enabled")
	}
	return nil
}

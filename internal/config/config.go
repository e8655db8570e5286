package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Role "viewer" limits a key to reads. Any other role, including none, may edit.
type APIKey struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
	Role string `yaml:"role"`
}

const RoleViewer = "viewer"

func (k APIKey) ReadOnly() bool {
	return k.Role == RoleViewer
}

type ExportConfig struct {
	Filename string        `yaml:"filename"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type Config struct {
	ListenAddr     string        `yaml:"listen_addr"`
	StartupSource  string        `yaml:"startup_source"`
	StartupTimeout time.Duration `yaml:"startup_timeout"`
	LogLevel       string        `yaml:"log_level"`
	APIKeys        []APIKey      `yaml:"api_keys"`
	Export         ExportConfig  `yaml:"export"`
}

const (
	DefaultListenAddr     = ":8080"
	DefaultStartupSource  = "/uoo_cooldown_manager/cooldowns.xml"
	DefaultStartupTimeout = 5 * time.Second
	DefaultExportFilename = "cooldowns.xml"
	DefaultExportCacheTTL = 10 * time.Minute
)

// Load reads the YAML config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		dec := yaml.NewDecoder(f)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.StartupSource == "" {
		c.StartupSource = DefaultStartupSource
	}
	if c.StartupTimeout <= 0 {
		c.StartupTimeout = DefaultStartupTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Export.Filename == "" {
		c.Export.Filename = DefaultExportFilename
	}
	if c.Export.CacheTTL <= 0 {
		c.Export.CacheTTL = DefaultExportCacheTTL
	}
}

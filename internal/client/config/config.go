package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/dmitrijs2005/cityreport/internal/common"
)

// MediaConfig describes the S3-compatible bucket photos are uploaded to.
// An empty Bucket disables photo uploads.
type MediaConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	Prefix        string
	UsePathStyle  bool
}

// Enabled reports whether a bucket is configured.
func (m MediaConfig) Enabled() bool {
	return m.Bucket != ""
}

// Config holds runtime settings for the CityReport CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	StorePath      string
	LogLevel       string
	LogFormat      string
	DefaultRole    models.Role
	Media          MediaConfig
}

// DefaultConfigPath is where LoadConfig looks when no file is given.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, common.AppName, "config.yaml")
}

// DefaultStorePath is the session database location under XDG_DATA_HOME.
func DefaultStorePath() string {
	return filepath.Join(xdg.DataHome, common.AppName, "session.db")
}

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.StorePath = DefaultStorePath()
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.DefaultRole = models.RoleCitizen
	c.Media = MediaConfig{
		Region: "us-east-1",
		Prefix: "reports",
	}
}

// LoadConfig builds a Config from defaults and the config file at path.
// An empty path means DefaultConfigPath, which may be absent. An explicit
// path that does not exist is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if err := loadFile(cfg, path); err != nil {
		if errors.Is(err, ErrConfigNotFound) && !explicit {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late, at the first request.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("server url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q: must be an absolute http(s) URL", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.StorePath == "" {
		return errors.New("store path is empty")
	}
	if !c.DefaultRole.Valid() {
		return fmt.Errorf("default role %q is not one of %v", c.DefaultRole, models.Roles)
	}
	return nil
}

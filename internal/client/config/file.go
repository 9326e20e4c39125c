package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/dmitrijs2005/cityreport/internal/timex"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// fileConfig is the on-disk shape. Empty values leave the current setting
// untouched.
type fileConfig struct {
	ServerURL      string         `json:"server_url" yaml:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	StorePath      string         `json:"store_path" yaml:"store_path"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
	DefaultRole    string         `json:"default_role" yaml:"default_role"`
	Media          fileMedia      `json:"media" yaml:"media"`
}

type fileMedia struct {
	Bucket        string `json:"bucket" yaml:"bucket"`
	Region        string `json:"region" yaml:"region"`
	Endpoint      string `json:"endpoint" yaml:"endpoint"`
	AccessKey     string `json:"access_key" yaml:"access_key"`
	SecretKey     string `json:"secret_key" yaml:"secret_key"`
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
	Prefix        string `json:"prefix" yaml:"prefix"`
	UsePathStyle  *bool  `json:"use_path_style" yaml:"use_path_style"`
}

// loadFile overlays cfg with the file at path. ".json" files are decoded
// as JSON, anything else as YAML.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &fc)
	} else {
		err = yaml.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, fc.ServerURL)
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	setString(&cfg.StorePath, fc.StorePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.DefaultRole != "" {
		cfg.DefaultRole = models.Role(fc.DefaultRole)
	}

	m := &cfg.Media
	setString(&m.Bucket, fc.Media.Bucket)
	setString(&m.Region, fc.Media.Region)
	setString(&m.Endpoint, fc.Media.Endpoint)
	setString(&m.AccessKey, fc.Media.AccessKey)
	setString(&m.SecretKey, fc.Media.SecretKey)
	setString(&m.PublicBaseURL, fc.Media.PublicBaseURL)
	setString(&m.Prefix, fc.Media.Prefix)
	if fc.Media.UsePathStyle != nil {
		m.UsePathStyle = *fc.Media.UsePathStyle
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

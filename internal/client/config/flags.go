package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by RegisterFlags and ApplyFlags.
const (
	FlagConfig    = "config"
	FlagServer    = "server"
	FlagTimeout   = "timeout"
	FlagStore     = "store"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// RegisterFlags declares the configuration flags on fs. Defaults shown in
// help come from a fresh default Config; ApplyFlags only copies flags the
// user actually set, so file values are not clobbered by flag defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to config file (YAML or JSON)")
	fs.StringP(FlagServer, "s", d.ServerURL, "base URL of the CityReport API")
	fs.Duration(FlagTimeout, d.RequestTimeout, "per-request timeout")
	fs.String(FlagStore, d.StorePath, "path to the local session database")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.LogFormat, "log format: text or json")
}

// ApplyFlags overlays cfg with flags explicitly set on fs.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if err := applyString(fs, FlagServer, &cfg.ServerURL); err != nil {
		return err
	}
	if err := applyString(fs, FlagStore, &cfg.StorePath); err != nil {
		return err
	}
	if err := applyString(fs, FlagLogLevel, &cfg.LogLevel); err != nil {
		return err
	}
	if err := applyString(fs, FlagLogFormat, &cfg.LogFormat); err != nil {
		return err
	}
	if fs.Changed(FlagTimeout) {
		d, err := fs.GetDuration(FlagTimeout)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func applyString(fs *pflag.FlagSet, name string, dst *string) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

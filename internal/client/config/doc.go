// Package config loads runtime configuration for the CityReport CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file, YAML or JSON by extension. Without --config the
//     file at $XDG_CONFIG_HOME/cityreport/config.yaml is used when it exists.
//  3. Command-line flags (see ApplyFlags), which override earlier values.
//
// # File schema
//
// Durations are read with timex.Duration, so "15s" and integer nanoseconds
// are both accepted:
//
//	server_url: https://cityreport.example.org/api
//	request_timeout: 15s
//	store_path: /var/lib/cityreport/session.db
//	log_level: info
//	log_format: text
//	default_role: citizen
//	media:
//	  bucket: report-photos
//	  region: eu-central-1
//	  endpoint: http://127.0.0.1:9000
//	  public_base_url: https://cdn.example.org/report-photos
//	  use_path_style: true
//
// Environment variables are not read directly, except for the standard AWS
// credential chain used by the media uploader when no static keys are set.
package config

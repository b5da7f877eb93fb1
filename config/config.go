// Package config holds the runtime settings of the converter: the scratch
// directory for exchange-file exports and the verbosity tag written into
// external geometry sections. Settings come from defaults, the optional
// config file and EXODECK_* environment variables, in ascending priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the resolved converter configuration
type Config struct {
	// TempDir is the scratch directory fresh exchange files are exported to
	TempDir string

	// ExchangeFile is the file name used for exports into TempDir
	ExchangeFile string

	// ShowInfo is the summary-verbosity tag of external geometry sections
	ShowInfo string
}

// Defaults registers the configuration defaults and environment bindings on
// a viper instance
func Defaults(v *viper.Viper) {
	v.SetEnvPrefix("EXODECK")
	v.AutomaticEnv()
	v.SetDefault("temp_dir",
		filepath.Join(os.TempDir(), fmt.Sprintf("exodeck_pid_%d", os.Getpid())))
	v.SetDefault("exchange_file", "exodeck.exo")
	v.SetDefault("show_info", "detailed_summary")
}

// FromViper resolves the configuration from a prepared viper instance
func FromViper(v *viper.Viper) *Config {
	return &Config{
		TempDir:      v.GetString("temp_dir"),
		ExchangeFile: v.GetString("exchange_file"),
		ShowInfo:     v.GetString("show_info"),
	}
}

// Load resolves the configuration from defaults and environment only
func Load() *Config {
	v := viper.New()
	Defaults(v)
	return FromViper(v)
}

// ExchangePath returns the full path fresh exchange files are exported to
func (c *Config) ExchangePath() string {
	return filepath.Join(c.TempDir, c.ExchangeFile)
}

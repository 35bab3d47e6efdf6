package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// DefaultPath is the config file looked up in the working directory
const DefaultPath = "gopoly.toml"

// Flags are the command line overrides shared by the viewer commands
type Flags struct {
	Path           string
	DebugAddr      string
	LogLevel       string
	Policy         string
	StatusInterval time.Duration
}

// Register adds the flags to fs
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Path, "config", "c", DefaultPath, "configuration file (TOML), reloaded on change")
	fs.StringVar(&f.DebugAddr, "debug-addr", "", "serve status and geometry over HTTP on this address, e.g. localhost:8080")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.Policy, "policy", "", "what Complete does when a polygon exists (allow, replace, reject)")
	fs.DurationVar(&f.StatusInterval, "status-interval", 0, "debug panel refresh interval")
}

// Load reads the config file and applies the flags that were set explicitly
func (f *Flags) Load(fs *pflag.FlagSet) (Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return cfg, err
	}
	if fs.Changed("debug-addr") {
		cfg.Debug.Addr = f.DebugAddr
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if fs.Changed("policy") {
		cfg.Behavior.PolygonPolicy = f.Policy
	}
	if fs.Changed("status-interval") {
		cfg.Behavior.StatusInterval = Duration{f.StatusInterval}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// Loader binds Load to fs so reloads keep the command line overrides
func (f *Flags) Loader(fs *pflag.FlagSet) Loader {
	return func() (Config, error) { return f.Load(fs) }
}

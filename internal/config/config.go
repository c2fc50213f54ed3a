// Package config loads settings for both lambdaq entrypoints (the REPL and
// the HTTP server) from an optional TOML file, following the same
// Database/DBType pattern the teacher's server/config.go uses for its own
// persistence settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/lambdaq/internal/printer"
	"github.com/dekarrin/lambdaq/internal/reduce"
	"github.com/dekarrin/lambdaq/internal/util"
)

// each returns a fresh slice since util.MakeTextList mutates its last
// element in place.
func printModeNames() []string { return []string{"named", "indexed", "nameless"} }
func strategyNames() []string  { return []string{"byvalue", "normalize"} }

// DBType is the type of persistence a ServerConfig connects to.
type DBType string

const (
	DatabaseNone   DBType = "none"
	DatabaseInMem  DBType = "inmem"
	DatabaseSQLite DBType = "sqlite"
)

func (t DBType) String() string {
	return string(t)
}

// ParseDBType parses a string found in a config file or flag into a DBType.
func ParseDBType(s string) (DBType, error) {
	switch strings.ToLower(s) {
	case DatabaseInMem.String():
		return DatabaseInMem, nil
	case DatabaseSQLite.String():
		return DatabaseSQLite, nil
	default:
		return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// ServerConfig holds the settings needed to start the HTTP API.
type ServerConfig struct {
	Type       DBType `toml:"db_type"`
	DataDir    string `toml:"data_dir"`
	ListenAddr string `toml:"listen_addr"`
	JWTSecret  string `toml:"jwt_secret"`

	// UnauthDelayMillis is the amount of additional time, in milliseconds,
	// to wait before sending a response that indicates the client was
	// unauthorized or unauthenticated, as an anti-flood measure against
	// naive non-parallel clients. A value less than 1 disables the delay.
	UnauthDelayMillis int `toml:"unauth_delay_ms"`
}

// UnauthDelay returns sc.UnauthDelayMillis as a time.Duration, or a
// zero-valued duration if it is less than 1.
func (sc ServerConfig) UnauthDelay() time.Duration {
	if sc.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Millisecond * time.Duration(sc.UnauthDelayMillis)
}

// Config holds every setting either lambdaq entrypoint needs. Zero-valued
// fields are filled in by FillDefaults.
type Config struct {
	PrintMode   printer.Mode    `toml:"-"`
	printMode   string          `toml:"print_mode"`
	Strategy    reduce.Strategy `toml:"-"`
	strategy    string          `toml:"strategy"`
	HistoryFile string          `toml:"history_file"`
	Typed       bool            `toml:"typed"`
	Server      ServerConfig    `toml:"server"`
}

// Load reads a TOML config file at path. A missing file is not an error;
// Load returns the documented defaults (see FillDefaults) in that case.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("decode config file %q: %w", path, err)
			}
		}
	}

	resolved, err := cfg.resolveModes()
	if err != nil {
		return Config{}, err
	}

	return resolved.FillDefaults(), nil
}

// resolveModes converts the TOML-facing string fields (printMode, strategy)
// into their typed equivalents, defaulting empty strings to the zero value
// of each enum (Named, ByValue) rather than erroring.
func (cfg Config) resolveModes() (Config, error) {
	out := cfg

	switch strings.ToLower(cfg.printMode) {
	case "", "named":
		out.PrintMode = printer.Named
	case "indexed":
		out.PrintMode = printer.Indexed
	case "nameless":
		out.PrintMode = printer.NamelessLocals
	default:
		return Config{}, fmt.Errorf("print_mode: must be one of %s, got %q", util.MakeTextList(printModeNames()), cfg.printMode)
	}

	switch strings.ToLower(cfg.strategy) {
	case "", "byvalue":
		out.Strategy = reduce.ByValue
	case "normalize":
		out.Strategy = reduce.Normalize
	default:
		return Config{}, fmt.Errorf("strategy: must be one of %s, got %q", util.MakeTextList(strategyNames()), cfg.strategy)
	}

	return out, nil
}

// FillDefaults returns a copy of cfg with unset fields replaced by their
// documented defaults: Named print mode, call-by-value reduction, readline
// history in "lambdaq_history", and an in-memory server DB listening on
// ":8080".
func (cfg Config) FillDefaults() Config {
	out := cfg

	if out.HistoryFile == "" {
		out.HistoryFile = "lambdaq_history"
	}
	if out.Server.Type == DatabaseNone {
		out.Server.Type = DatabaseInMem
	}
	if out.Server.ListenAddr == "" {
		out.Server.ListenAddr = ":8080"
	}
	if out.Server.JWTSecret == "" {
		out.Server.JWTSecret = "DEFAULT_JWT_SECRET-DO_NOT_USE_IN_PROD!"
	}
	if out.Server.UnauthDelayMillis == 0 {
		out.Server.UnauthDelayMillis = 1000
	}

	return out
}

// SetPrintModeFlag parses a CLI-friendly mode name ("named", "indexed",
// "nameless") and overrides cfg.PrintMode with it.
func (cfg *Config) SetPrintModeFlag(s string) error {
	switch strings.ToLower(s) {
	case "named":
		cfg.PrintMode = printer.Named
	case "indexed":
		cfg.PrintMode = printer.Indexed
	case "nameless":
		cfg.PrintMode = printer.NamelessLocals
	default:
		return fmt.Errorf("mode must be one of %s, got %q", util.MakeTextList(printModeNames()), s)
	}
	return nil
}

// SetStrategyFlag parses a CLI-friendly strategy name ("byvalue",
// "normalize") and overrides cfg.Strategy with it.
func (cfg *Config) SetStrategyFlag(s string) error {
	switch strings.ToLower(s) {
	case "byvalue":
		cfg.Strategy = reduce.ByValue
	case "normalize":
		cfg.Strategy = reduce.Normalize
	default:
		return fmt.Errorf("strategy must be one of %s, got %q", util.MakeTextList(strategyNames()), s)
	}
	return nil
}

// Package config loads the engine's tunable parameters: game setup
// (player count, seed, data directories), economy constants, command-pool
// limits, bridge and log settings, plus the class registries decoded from
// TOML in toml.go.
//
// Grounded on the teacher's `arguments.ParseConfig`
// (pkg/arguments/server_config.go): `viper.SetEnvPrefix`, environment
// variable overlay via `AutomaticEnv`, and `viper.ReadInConfig` against a
// named config file searched on a fixed path list. The cloud-metadata
// lookup the teacher layers on top (pkg/arguments/cloud) has no home in
// a turn-resolution engine with no EC2 deployment target, so it is
// dropped rather than adapted.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"ec4x_engine/pkg/duration"
)

// GameSetup holds the map-generation and turn-pipeline parameters read
// from the primary config file.
type GameSetup struct {
	PlayerCount    int
	MasterSeed     int64
	RulesDir       string
	ConfigDir      string
}

// Economy holds the Economy-phase constants.
type Economy struct {
	BaseOutputPerPU float64
	MaxTaxRate      float64
}

// Limits holds command-pool and espionage-pool ceilings.
type Limits struct {
	BaseCommandCapacity int
	EspionagePoolCap    int
}

// Bridge holds the HTTP bridge's listen address and concurrency cap.
// TickInterval is optional: zero means the engine only advances a turn in
// response to `POST /turn/advance`; a positive value also starts a
// background ticker that advances a turn on that cadence against
// whatever order packets are queued, for running the engine as an
// unattended long-lived process.
type Bridge struct {
	ListenAddr   string
	Workers      int
	TickInterval duration.Duration
}

// Log holds the logger's display configuration.
type Log struct {
	AppName string
	Level   string
	Buffer  int
}

// Config is the fully-parsed, validated configuration for one engine
// process.
type Config struct {
	GameSetup GameSetup
	Economy   Economy
	Limits    Limits
	Bridge    Bridge
	Log       Log
}

// Load parses the named config file (without extension) the same way the
// teacher's `ParseConfig` does: environment variables prefixed `ENV_`
// override file values, `.` in a key name maps to `_` in the environment
// variable name, and the file is searched in the working directory and
// in `data/config`.
func Load(configFile string) (Config, error) {
	viper.SetEnvPrefix("ENV")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()

	viper.SetConfigName(configFile)
	viper.AddConfigPath(".")
	viper.AddConfigPath("data/config")

	viper.SetDefault("GameSetup.PlayerCount", 4)
	viper.SetDefault("GameSetup.MasterSeed", int64(1))
	viper.SetDefault("GameSetup.RulesDir", "data/rules")
	viper.SetDefault("GameSetup.ConfigDir", "data/config")
	viper.SetDefault("Economy.BaseOutputPerPU", 1.0)
	viper.SetDefault("Economy.MaxTaxRate", 0.9)
	viper.SetDefault("Limits.BaseCommandCapacity", 10)
	viper.SetDefault("Limits.EspionagePoolCap", 1000)
	viper.SetDefault("Bridge.ListenAddr", ":8080")
	viper.SetDefault("Bridge.Workers", 4)
	viper.SetDefault("Bridge.TickInterval", "0s")
	viper.SetDefault("Log.AppName", "ec4x_engine")
	viper.SetDefault("Log.Level", "info")
	viper.SetDefault("Log.Buffer", 500)

	if err := viper.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("parsing configuration %q: %w", configFile, err)
	}

	tick, err := time.ParseDuration(viper.GetString("Bridge.TickInterval"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing Bridge.TickInterval: %w", err)
	}

	cfg := Config{
		GameSetup: GameSetup{
			PlayerCount: viper.GetInt("GameSetup.PlayerCount"),
			MasterSeed:  viper.GetInt64("GameSetup.MasterSeed"),
			RulesDir:    viper.GetString("GameSetup.RulesDir"),
			ConfigDir:   viper.GetString("GameSetup.ConfigDir"),
		},
		Economy: Economy{
			BaseOutputPerPU: viper.GetFloat64("Economy.BaseOutputPerPU"),
			MaxTaxRate:      viper.GetFloat64("Economy.MaxTaxRate"),
		},
		Limits: Limits{
			BaseCommandCapacity: viper.GetInt("Limits.BaseCommandCapacity"),
			EspionagePoolCap:    viper.GetInt("Limits.EspionagePoolCap"),
		},
		Bridge: Bridge{
			ListenAddr:   viper.GetString("Bridge.ListenAddr"),
			Workers:      viper.GetInt("Bridge.Workers"),
			TickInterval: duration.NewDuration(tick),
		},
		Log: Log{
			AppName: viper.GetString("Log.AppName"),
			Level:   viper.GetString("Log.Level"),
			Buffer:  viper.GetInt("Log.Buffer"),
		},
	}

	if cfg.GameSetup.PlayerCount < 1 {
		return Config{}, fmt.Errorf("GameSetup.PlayerCount must be positive, got %d", cfg.GameSetup.PlayerCount)
	}
	return cfg, nil
}

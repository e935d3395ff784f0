// Command ec4x_engine runs the turn-resolution engine's HTTP bridge: it
// loads the operational configuration and class registries, builds a
// fresh game, and serves the rules/state/orders/turn-advance endpoints.
//
// Grounded on the teacher's `cmd/oglike_server/main.go`: flag-driven
// config file selection, a panic-recovery defer wrapping the whole run,
// and a logger released on exit.
package main

import (
	"flag"
	"fmt"
	"runtime/debug"

	"ec4x_engine/internal/bridge"
	"ec4x_engine/internal/config"
	"ec4x_engine/internal/game"
	"ec4x_engine/internal/logging"
	"ec4x_engine/internal/rules"
	"ec4x_engine/pkg/background"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("./ec4x_engine -config=[file] to select the configuration file to use")
}

func main() {
	help := flag.Bool("h", false, "Print usage")
	confFile := flag.String("config", "server", "Configuration file to customize app behavior")
	flag.Parse()

	if *help {
		usage()
		return
	}

	cfg, err := config.Load(*confFile)
	if err != nil {
		panic(fmt.Errorf("loading configuration: %w", err))
	}

	log := logging.NewStdLogger(cfg.Log.AppName, severityFromString(cfg.Log.Level), cfg.Log.Buffer)
	defer func() {
		if err := recover(); err != nil {
			log.Trace(logging.Fatal, "main", fmt.Sprintf("app crashed: %v (stack: %s)", err, debug.Stack()))
		}
		log.Release()
	}()

	ships, err := config.LoadShipRegistry(cfg.GameSetup.RulesDir)
	if err != nil {
		panic(fmt.Errorf("loading ship registry: %w", err))
	}
	facilities, err := config.LoadFacilityRegistry(cfg.GameSetup.RulesDir)
	if err != nil {
		panic(fmt.Errorf("loading facility registry: %w", err))
	}
	groundUnits, err := config.LoadGroundUnitRegistry(cfg.GameSetup.RulesDir)
	if err != nil {
		panic(fmt.Errorf("loading ground unit registry: %w", err))
	}
	tech, err := config.LoadTechRegistry(cfg.GameSetup.RulesDir)
	if err != nil {
		panic(fmt.Errorf("loading tech registry: %w", err))
	}

	snapshot, err := rules.BuildSnapshot(ships, facilities, groundUnits, tech, cfg.Limits, cfg.Economy)
	if err != nil {
		panic(fmt.Errorf("building rules snapshot: %w", err))
	}

	state, err := game.NewGame(cfg, ships, facilities, groundUnits, tech)
	if err != nil {
		panic(fmt.Errorf("setting up game: %w", err))
	}

	log.Trace(logging.Info, "main", fmt.Sprintf("serving %d houses on %s", cfg.GameSetup.PlayerCount, cfg.Bridge.ListenAddr))

	server := bridge.NewServer(cfg, state, snapshot, log)

	if cfg.Bridge.TickInterval.Duration > 0 {
		ticker := background.NewProcess(cfg.Bridge.TickInterval.Duration, log).
			WithModule("ticker").
			WithOperation(server.AdvanceOnSchedule)
		if err := ticker.Start(); err != nil {
			panic(fmt.Errorf("starting turn ticker: %w", err))
		}
		defer ticker.Stop()
	}

	if err := server.Serve(); err != nil {
		panic(fmt.Errorf("serving bridge on %s: %w", cfg.Bridge.ListenAddr, err))
	}
}

func severityFromString(level string) logging.Severity {
	switch level {
	case "verbose":
		return logging.Verbose
	case "debug":
		return logging.Debug
	case "notice":
		return logging.Notice
	case "warning":
		return logging.Warning
	case "error":
		return logging.Error
	case "critical":
		return logging.Critical
	case "fatal":
		return logging.Fatal
	default:
		return logging.Info
	}
}

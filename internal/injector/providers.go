// Package injector assembles a darkzone runtime with google/wire.
package injector

import (
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/events/bus"
	"github.com/zeusync/darkzone/internal/core/game"
	"github.com/zeusync/darkzone/internal/core/observability/log"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/storage"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/server"
)

// ConfigPath points at a YAML config file. Empty means built-in defaults.
type ConfigPath string

// CueSource names the publisher of simulation cues on the bus.
const CueSource = "darkzone"

// App is the assembled runtime.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Bus     bus.EventBus
	Engine  *systems.Engine
	Session *game.Session
	Server  *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideBus,
	ProvideEngine,
	ProvideSinks,
	ProvideProgress,
	ProvideSession,
	wire.Bind(new(server.StatusSource), new(*game.Session)),
	ProvideServer,
	wire.Struct(new(App), "*"),
)

func ProvideConfig(path ConfigPath) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(string(path))
}

func ProvideLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(level, log.Options{
		Encoding:    cfg.Log.Encoding,
		OutputPaths: cfg.Log.OutputPaths,
	}), nil
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvideEngine(cfg *config.Config, logger log.Log) *systems.Engine {
	return systems.NewEngine(systems.Options{Logger: logger, Seed: cfg.Engine.Seed})
}

// ProvideSinks routes audio and visual cues onto the bus. Input stays idle and
// light levels come from the world's own lighting.
func ProvideSinks(b bus.EventBus, logger log.Log) sinks.Sinks {
	cues := sinks.NewBusSink(b, CueSource, logger)
	return sinks.Sinks{Audio: cues, Visual: cues}
}

// ProvideProgress stores progress under game.save_dir, or in memory when unset.
func ProvideProgress(cfg *config.Config) (storage.Storage, error) {
	if cfg.Game.SaveDir == "" {
		return storage.NewMemory(), nil
	}
	return storage.NewFile(cfg.Game.SaveDir)
}

func ProvideSession(engine *systems.Engine, cfg *config.Config, s sinks.Sinks, progress storage.Storage, logger log.Log) *game.Session {
	return game.NewSession(engine, game.SessionOptions{Config: cfg, Sinks: s, Progress: progress, Logger: logger})
}

func ProvideServer(cfg *config.Config, b bus.EventBus, status server.StatusSource, logger log.Log) *server.Server {
	return server.NewServer(cfg.Server, b, status, logger)
}

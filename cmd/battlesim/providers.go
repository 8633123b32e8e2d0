package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/sim"
)

// App holds the wired components of one battlesim invocation.
type App struct {
	Config config.Config
	Logger *zap.Logger
	Engine *combat.Engine
	Runner *sim.Runner
}

var appSet = wire.NewSet(
	provideLogger,
	provideEngine,
	provideRunner,
	wire.Struct(new(App), "*"),
)

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideEngine(cfg config.Config, logger *zap.Logger) *combat.Engine {
	return combat.NewEngine(cfg.Combat, logger.Named("engine"))
}

func provideRunner(cfg config.Config, engine *combat.Engine, logger *zap.Logger) *sim.Runner {
	return sim.NewRunner(engine, cfg.Sim.Workers, logger.Named("sim"))
}

//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/cory-johannsen/skirmish/internal/config"
)

func initializeApp(cfg config.Config) (*App, func(), error) {
	wire.Build(appSet)
	return nil, nil, nil
}

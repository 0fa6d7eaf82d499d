//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/geomath/internal/config"
	"github.com/zeusync/geomath/internal/server"
)

func InitializeServer(cfg config.Config) (*server.Server, func()) {
	wire.Build(ProviderSet)
	return nil, nil
}

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/geomath/internal/config"
	"github.com/zeusync/geomath/internal/core/observability/log"
	"github.com/zeusync/geomath/internal/server"
)

// ProviderSet builds a server from a validated config.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideServerConfig,
	ProvideServiceConfig,
	server.NewService,
	server.NewServer,
)

// ProvideLogger builds the process logger. The cleanup flushes it.
func ProvideLogger(cfg config.Config) (log.Log, func()) {
	logger := log.New(cfg.LogLevel())
	return logger, func() {
		// stderr may reject fsync; there is nowhere left to report that.
		_ = logger.Sync()
	}
}

func ProvideServerConfig(cfg config.Config) config.ServerConfig {
	return cfg.Server
}

func ProvideServiceConfig(cfg config.Config) config.ServiceConfig {
	return cfg.Service
}

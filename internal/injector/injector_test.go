package injector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/geomath/internal/config"
)

func TestInitializeServer(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"

	srv, cleanup := InitializeServer(cfg)
	require.NotNil(t, srv)
	require.NotNil(t, cleanup)
	require.NotNil(t, srv.Handler())
	require.Nil(t, srv.Addr())
	require.NotPanics(t, cleanup)
}

func TestProvidersSplitConfig(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, cfg.Server, ProvideServerConfig(cfg))
	require.Equal(t, cfg.Service, ProvideServiceConfig(cfg))

	logger, cleanup := ProvideLogger(cfg)
	require.NotNil(t, logger)
	require.Equal(t, cfg.LogLevel(), logger.GetLevel())
	require.NotPanics(t, cleanup)
}

package main

import (
	"github.com/osse101/CoopTokenSim_Go/internal/config"
	"github.com/osse101/CoopTokenSim_Go/internal/handler"
	"github.com/osse101/CoopTokenSim_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	lc := logger.ServiceConfig(cfg.Environment)
	lc.Level = cfg.LogLevel
	lc.Format = cfg.LogFormat
	lc.ServiceName = handler.ServiceName
	lc.Version = handler.ResolveVersion()
	logger.InitLogger(lc)
}

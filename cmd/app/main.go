package main

import (
	"checkin/config"
	"checkin/di"
	"checkin/shared/logger"
)

// @title Guest Check-In API
// @version 1.0
// @description Multi-tenant hotel guest registration portal.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}

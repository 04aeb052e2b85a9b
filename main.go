package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"printshop-crm/app"
	"printshop-crm/config"
	"printshop-crm/db"
	"printshop-crm/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	handler, err := app.Initialize(cfg, logger)
	if err != nil {
		logger.Fatal("initialization failed", zap.Error(err))
	}
	defer db.Close()

	// Listen on 0.0.0.0 so containerized deployments can reach the server.
	addr := "0.0.0.0:" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr))

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

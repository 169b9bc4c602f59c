package main

import (
	"net/http"

	"go.uber.org/zap"

	"erp-assistant-backend/internal/config"
	"erp-assistant-backend/internal/server"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	s, err := server.NewServer(cfg, log)
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}
	addr := ":" + cfg.Port
	log.Info("ERP assistant listening", zap.String("addr", addr))
	log.Fatal("server stopped", zap.Error(http.ListenAndServe(addr, s.Router())))
}

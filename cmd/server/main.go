package main

import (
	"context"
	"fmt"

	"folio/internal/config"
	"folio/internal/handlers"
	"folio/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := cfg.NewLogger()

	mode, err := service.ParsePricingMode(cfg.PricingMode)
	if err != nil {
		logger.Fatalf("pricing mode: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := service.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatalf("db connect failed: %v", err)
	}
	defer closeStore()

	svc := service.NewPortfolioService(service.NewResultCache(store, logger), service.NewStubPriceOracle(nil), mode, logger)
	h := handlers.NewHandler(svc, logger)
	rg := handlers.NewRouter(h)

	logger.WithFields(logrus.Fields{"driver": cfg.Database.Driver, "pricing": mode}).Infof("server starting on :%d", cfg.Port)
	if err := rg.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

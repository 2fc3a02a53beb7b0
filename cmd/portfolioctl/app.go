package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"folio/internal/config"
	"folio/internal/models"
	"folio/internal/service"

	"github.com/sirupsen/logrus"
)

// app bundles what every subcommand needs.
type app struct {
	cfg   config.Config
	log   *logrus.Logger
	store service.KVStore
	svc   *service.PortfolioService
	close func()
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := cfg.NewLogger()
	log.SetOutput(os.Stderr)

	mode, err := service.ParsePricingMode(cfg.PricingMode)
	if err != nil {
		return nil, err
	}
	store, closeFn, err := service.OpenStore(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	svc := service.NewPortfolioService(service.NewResultCache(store, log), service.NewStubPriceOracle(nil), mode, log)
	return &app{cfg: cfg, log: log, store: store, svc: svc, close: closeFn}, nil
}

func writeJSON(w io.Writer, res *models.ParsedResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

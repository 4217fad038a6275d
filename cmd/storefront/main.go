package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/api"
	"github.com/meharshop/storefront/internal/auth"
	"github.com/meharshop/storefront/internal/backend"
	"github.com/meharshop/storefront/internal/cart"
	"github.com/meharshop/storefront/internal/checkout"
	"github.com/meharshop/storefront/internal/config"
	"github.com/meharshop/storefront/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Durable store for the cart and token; session store for the draft
	durable, err := storage.NewFileStore(cfg.Storage.StateDir)
	if err != nil {
		logger.Fatal("Failed to open state dir", zap.Error(err))
	}
	session := storage.NewMemStore()

	// Cart store and sync bridge
	bridge := cart.NewBridge(durable, logger)
	cartStore := cart.NewStore(durable, bridge, logger)

	// Watch for cart changes made by other processes sharing the state dir
	watcher, err := durable.Watch(cart.StorageKey)
	if err != nil {
		logger.Fatal("Failed to watch cart storage", zap.Error(err))
	}
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bridge.Run(ctx, watcher.C)

	// Checkout and backend wiring
	client := backend.NewClient(cfg.Backend, logger)
	drafts := checkout.NewDrafts(session, logger)
	flow := checkout.NewFlow(drafts, cartStore, client, logger)
	tokens := auth.NewTokens(durable)

	router := api.NewRouter(cfg, api.Deps{
		Cart:    cartStore,
		Bridge:  bridge,
		Drafts:  drafts,
		Flow:    flow,
		Backend: client,
		Tokens:  tokens,
	}, logger)

	logger.Info("Starting storefront",
		zap.String("port", cfg.Port),
		zap.String("api", cfg.Backend.BaseURL),
		zap.String("state_dir", cfg.Storage.StateDir),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

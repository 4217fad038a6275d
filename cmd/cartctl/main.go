package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/cart"
	"github.com/meharshop/storefront/internal/config"
	"github.com/meharshop/storefront/internal/domain"
	"github.com/meharshop/storefront/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/cartctl/main.go <show|count|clear>")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	durable, err := storage.NewFileStore(cfg.Storage.StateDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open state dir: %v\n", err)
		os.Exit(1)
	}
	store := cart.NewStore(durable, nil, logger)

	switch os.Args[1] {
	case "show":
		items := store.Items()
		if len(items) == 0 {
			fmt.Println("Cart is empty.")
			return
		}
		for _, it := range items {
			fmt.Printf("%-24s x%-3d Rs %.0f  (%s)\n", it.Title, it.Quantity, it.Price, it.ProductID)
		}
		fmt.Printf("Subtotal: Rs %.0f\n", domain.Subtotal(items))
	case "count":
		total := 0
		for _, it := range store.Items() {
			total += it.Quantity
		}
		fmt.Println(total)
	case "clear":
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to clear cart: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cart cleared.")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/neogan74/kvd/internal/app"
	"github.com/neogan74/kvd/internal/config"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.NewBuilder(cfg, version).Build()
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := application.Run(context.Background()); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"vehicle-search-service/internal"
)

func main() {
	app, err := internal.NewApp()
	if err != nil {
		log.Printf("Failed to initialize application: %v", err)
		os.Exit(1)
	}
	defer app.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Printf("Application stopped with error: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tgarmenliev/sofaccess-api/config"
	deps "github.com/tgarmenliev/sofaccess-api/internal/debs"
	api "github.com/tgarmenliev/sofaccess-api/internal/http/rest"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()
	cfg.MustValidate()

	deps := deps.New(cfg)

	if err := deps.DB.Migrate(context.Background()); err != nil {
		log.Panicln("failed to run migrations", "error", err)
	}

	a := &api.API{
		Config: cfg,
		Deps:   deps,
		DB:     deps.Pool(),
	}
	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		log.Fatal(a.Serve())
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Waiting", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")

	if err := a.Shutdown(); err != nil {
		log.Println("server shutdown failed", err)
	}

	deps.DB.Close()
	log.Println("Database connections closed.")
}

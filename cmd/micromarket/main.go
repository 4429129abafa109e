package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/micromarket/backend/config"
	"github.com/micromarket/backend/internal/app"
	"github.com/micromarket/backend/internal/marketapi"
	"github.com/micromarket/backend/internal/webserver"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
	cfg := config.LoadConfig(os.Getenv("MICROMARKET_CONFIG"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication(cfg)
	if err := application.Init(ctx); err != nil {
		log.Fatalf("init: %v", err)
	}
	defer application.Release()

	marketapi.RegisterRoutes()
	server := webserver.Init(application)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(cfg.Web.Host + ":" + cfg.Web.Port)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

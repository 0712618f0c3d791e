package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rgt24/orderboard/config"
	"github.com/rgt24/orderboard/internal/app"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// graceful shutdown по сигналу
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	a.Logger.Infof(ctx, "dashboard starting http=%s backend=%s realtime=%s cache=%s",
		cfg.HTTP.Addr, cfg.Backend.BaseURL, cfg.Realtime.URL, cfg.Cache.Path)

	if err := a.Run(ctx); err != nil {
		a.Logger.Errorf(ctx, "dashboard stopped with error: %v", err)
		return
	}
	a.Logger.Infof(ctx, "dashboard stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rgt24/orderboard/config"
	"github.com/rgt24/orderboard/internal/simulator"
	"github.com/rgt24/orderboard/pkg/logger"
)

// Бэкенд-симулятор заказов: REST-листинг, приём заказов и
// websocket-рассылка. Нужен для локальных запусков витрины.
func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		panic(err)
	}
	defer func() { _ = cleanup() }()

	srv := simulator.NewServer(logg)

	// посев пары заказов, чтобы листинг не был пустым с первого запроса
	srv.Store().Create("margherita", 1)
	srv.Store().Create("carbonara", 2)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Errorf(ctx, "order server stopped: %v", err)
			cancel()
		}
	}()
	logg.Infof(ctx, "order server listening on %s", cfg.Server.Addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	cancel()

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = httpSrv.Shutdown(shCtx)
}

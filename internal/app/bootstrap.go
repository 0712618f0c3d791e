package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rgt24/orderboard/config"
	cachesqlite "github.com/rgt24/orderboard/internal/cache/sqlite"
	"github.com/rgt24/orderboard/internal/connectivity"
	"github.com/rgt24/orderboard/internal/engine"
	"github.com/rgt24/orderboard/internal/fetch"
	"github.com/rgt24/orderboard/internal/ports"
	"github.com/rgt24/orderboard/internal/realtime"
	rest "github.com/rgt24/orderboard/internal/transport/http"
	"github.com/rgt24/orderboard/pkg/logger"
	"github.com/rgt24/orderboard/pkg/metrics"
	"github.com/rgt24/orderboard/pkg/telemetry"
	"github.com/rgt24/orderboard/pkg/validate"
)

// App — собранная витрина и её рабочие компоненты.
type App struct {
	Logger     ports.Logger
	HTTPServer *http.Server
	Engine     *engine.Engine
	Channel    *realtime.Channel
	Monitor    *connectivity.Monitor

	gracefulTimeout time.Duration
}

// Cleanup — освобождение ресурсов в обратном порядке сборки.
type Cleanup func()

// applyGinMode — режим Gin по строке; неизвестное значение → debug.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости движка синхронизации и возвращает
// приложение с функцией очистки.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()

	// Трейсинг OTEL по конфигурации; по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
			otelServiceName = cfg.Tracing.ServiceName
		}
	}

	// Локальный кэш (embedded SQLite).
	db, err := cachesqlite.OpenDB(ctx, cfg.Cache.Path)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}
	store := cachesqlite.NewStore(db)

	// Источники: REST-клиент (paged + delta + проба), монитор связности,
	// push-канал.
	client := fetch.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout)
	monitor := connectivity.NewMonitor(client.Ping, cfg.Connectivity.ProbeInterval, logg)
	channel := realtime.NewChannel(realtime.Config{
		URL:              cfg.Realtime.URL,
		ReconnectDelay:   cfg.Realtime.ReconnectDelay,
		HandshakeTimeout: cfg.Realtime.HandshakeTimeout,
	}, monitor, logg)

	orderValidator := validate.NewOrderValidator()

	eng := engine.New(engine.Config{
		PageSize:        cfg.Backend.PageSize,
		Capacity:        cfg.Cache.Capacity,
		Freshness:       cfg.Cache.Freshness,
		CatchUpInterval: cfg.Engine.CatchUpInterval,
	}, client, client, store, channel, monitor, orderValidator, logg)

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	httpHandler := rest.NewHandler(eng, logg)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Engine:          eng,
		Channel:         channel,
		Monitor:         monitor,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if cErr := channel.Close(); cErr != nil {
			logg.Warnf(ctx, "realtime close error: %v", cErr)
		}
		if dbErr := db.Close(); dbErr != nil {
			logg.Warnf(ctx, "cache close error: %v", dbErr)
		}
		_ = cleanupLogger()
	}

	return app, cleanup, nil
}

// Run — запуск рабочих горутин и ожидание завершения.
// Первая проба связности выполняется синхронно, чтобы холодный старт
// движка видел актуальный online/offline.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.Monitor.Probe(ctx)

	fail := make(chan error, 4)

	go func() {
		if err := a.Monitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fail <- err
		}
	}()
	go func() {
		if err := a.Channel.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fail <- err
		}
	}()
	go func() {
		if err := a.Engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fail <- err
		}
	}()
	go func() {
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fail <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-fail:
		a.Logger.Errorf(ctx, "component failed: %v", runErr)
		cancel()
	}

	timeout := a.gracefulTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shCtx, shCancel := context.WithTimeout(context.Background(), timeout)
	defer shCancel()
	if err := a.HTTPServer.Shutdown(shCtx); err != nil {
		a.Logger.Warnf(ctx, "http shutdown: %v", err)
	}
	return runErr
}

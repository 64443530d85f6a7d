package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuzvak/herbal-storefront/internal/application/commands"
	"github.com/yuzvak/herbal-storefront/internal/application/ports"
	"github.com/yuzvak/herbal-storefront/internal/application/use_cases"
	"github.com/yuzvak/herbal-storefront/internal/config"
	"github.com/yuzvak/herbal-storefront/internal/domain/storefront"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/catalog"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/handlers"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/server"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/monitoring"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/persistence/memory"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/persistence/postgres"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/persistence/redis"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/scheduler"
	"github.com/yuzvak/herbal-storefront/internal/pkg/clock"
	"github.com/yuzvak/herbal-storefront/internal/pkg/generator"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
	"github.com/yuzvak/herbal-storefront/internal/pkg/timers"
	"github.com/yuzvak/herbal-storefront/internal/presentation/view"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	bootLog := logger.NewLogger()

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		bootLog.Fatal("Failed to load configuration", "error", configErr)
	}

	log := logger.NewLoggerFor(logger.ParseEnvironment(cfg.Environment), os.Stdout)
	log.Info("Starting herbal storefront", "environment", cfg.Environment)

	definitions, err := catalog.LoadFile(cfg.Storefronts)
	if err != nil {
		log.Fatal("Failed to load storefronts", "error", err, "path", cfg.Storefronts)
	}

	registry, err := storefront.NewRegistry(definitions)
	if err != nil {
		log.Fatal("Invalid storefront definitions", "error", err)
	}

	snapshot := catalog.NewSnapshot()
	for _, sf := range definitions {
		if err := snapshot.Replace(sf.Key, sf.Products); err != nil {
			log.Fatal("Invalid catalog", "storefront", sf.Key, "error", err)
		}
		monitoring.SetCatalogProducts(sf.Key, len(sf.Products))
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	health := map[string]handlers.Pinger{}

	var refresher *scheduler.CatalogRefresher
	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		if err := postgres.RunMigrations(appCtx, cfg.Database, log); err != nil {
			log.Fatal("Failed to run migrations", "error", err)
		}

		db, err := postgres.NewConnection(appCtx, cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", "error", err)
		}
		defer db.Close()
		health["database"] = db

		monitoring.NewDBMetricsCollector(db.GetDB()).StartCollecting(appCtx, 30*time.Second)

		refresher = scheduler.NewCatalogRefresher(
			postgres.NewCatalogRepository(db),
			snapshot,
			registry.Keys(),
			cfg.Catalog.RefreshInterval(),
			log,
		)
		if err := refresher.Refresh(appCtx); err != nil {
			log.Fatal("Failed to load catalog from database", "error", err)
		}
		go refresher.Start(appCtx)
	}

	clk := clock.NewRealClock()

	var (
		store ports.CartStore
		guard ports.SubmitGuard
	)
	switch cfg.Cart.Store {
	case config.CartStoreRedis:
		conn, err := redis.NewConnection(appCtx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		defer conn.Close()
		health["redis"] = conn

		store = redis.NewCartStore(conn, cfg.Cart.TTL(), log)
		guard = redis.NewSubmitGuard(conn, log)
	default:
		log.Warn("Using in-memory cart store, carts are lost on restart")
		store = memory.NewCartStore(log)
		guard = memory.NewSubmitGuard(clk)
	}

	metrics := monitoring.NewBusinessMetrics()
	codeGen := generator.NewCodeGenerator()

	carts := use_cases.NewCartService(registry, snapshot, store, metrics, log)
	checkout := use_cases.NewCheckoutUseCase(
		carts,
		snapshot,
		guard,
		codeGen,
		clk,
		metrics,
		log,
		cfg.Checkout.SubmitWindow(),
	)

	controller := view.NewController(
		carts,
		commands.NewCheckoutHandler(checkout, log),
		commands.NewQuickOrderHandler(checkout, log),
		log,
	)
	toasts := view.NewToastBoard(timers.NewGroup(clk), cfg.Checkout.ToastDismiss())

	httpServer := server.NewServer(cfg.Server, server.Handlers{
		Health:   handlers.NewHealthHandler(health, log),
		Cart:     handlers.NewCartHandler(controller, toasts, log),
		Checkout: handlers.NewCheckoutHandler(controller, checkout, toasts, log),
		Contact:  handlers.NewContactHandler(checkout, log),
		Product:  handlers.NewProductHandler(carts, snapshot, log),
		Toast:    handlers.NewToastHandler(carts, toasts),
	}, codeGen, log)

	var metricsServer *monitoring.MetricsServer
	if cfg.Server.MetricsAddr != "" {
		metricsServer = monitoring.NewMetricsServer(cfg.Server.MetricsAddr)
		go func() {
			log.Info("Metrics server starting", "address", cfg.Server.MetricsAddr)
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed", "error", err)
			}
		}()
	}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		log.Info("Shutting down server...")
		if refresher != nil {
			refresher.Stop()
		}
		toasts.Close()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Error("Metrics server shutdown error", "error", err)
			}
		}

		stopApp()
		serverStopCtx()
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}

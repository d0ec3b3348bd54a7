package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/barterhub/barterhub/internal/api/http"
	"github.com/barterhub/barterhub/internal/application/blacklist"
	"github.com/barterhub/barterhub/internal/application/history"
	"github.com/barterhub/barterhub/internal/application/notification"
	"github.com/barterhub/barterhub/internal/application/pickup"
	apptrade "github.com/barterhub/barterhub/internal/application/trade"
	"github.com/barterhub/barterhub/internal/clock"
	"github.com/barterhub/barterhub/internal/config"
	domainhistory "github.com/barterhub/barterhub/internal/domain/history"
	"github.com/barterhub/barterhub/internal/domain/trade"
	"github.com/barterhub/barterhub/internal/infrastructure/i18n"
	"github.com/barterhub/barterhub/internal/infrastructure/memory"
	"github.com/barterhub/barterhub/internal/infrastructure/postgres"
	"github.com/barterhub/barterhub/internal/infrastructure/sse"
	"github.com/barterhub/barterhub/internal/migrations"
)

const (
	currencyName  = "coins"
	historyBuffer = 1024
	probeTimeout  = 3 * time.Second
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid log level")
	}
	logger = logger.Level(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// history storage
	var historyRepo domainhistory.Repository = memory.NewHistoryRepository()
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("db error")
		}
		defer pool.Close()
		if err := postgres.RunMigrations(ctx, pool, migrations.FS); err != nil {
			logger.Fatal().Err(err).Msg("migration error")
		}
		historyRepo = postgres.NewHistoryRepository(pool)
		logger.Info().Msg("trade history stored in postgres")
	} else {
		logger.Info().Msg("trade history kept in memory")
	}

	// infrastructure
	realClock := clock.Real()
	catalog, err := i18n.LoadEmbedded()
	if err != nil {
		logger.Fatal().Err(err).Msg("message catalog error")
	}
	world := memory.NewWorld(realClock, logger)
	sseHub := sse.NewHub(logger)

	var ledger *memory.Ledger
	var economy trade.Economy
	if cfg.Trade.WithMoney {
		var opts []memory.LedgerOption
		if !cfg.Trade.NoDebts {
			opts = append(opts, memory.WithDebts())
		}
		ledger = memory.NewLedger(cfg.Trade.StartingBalance, catalog.Match(cfg.Trade.Locale), currencyName, opts...)
		if probeEconomy(ctx, ledger, logger) {
			economy = ledger
		} else {
			ledger = nil
		}
	}

	// services
	notificationSvc := notification.NewService(catalog, sseHub, cfg.Trade.Locale, realClock, logger)
	historySvc := history.NewService(historyRepo, historyBuffer, logger)

	sessions := trade.NewRegistry(trade.Settings{
		MoneyEnabled: cfg.Trade.WithMoney,
		NoDebts:      cfg.Trade.NoDebts,
		Tiers: trade.MoneyTiers{
			Small:  cfg.Trade.MoneySmall,
			Medium: cfg.Trade.MoneyMedium,
			Large:  cfg.Trade.MoneyLarge,
		},
	}, trade.Deps{
		Inventory: world,
		Economy:   economy,
		Notifier:  notificationSvc,
		Sinks:     []trade.EventSink{historySvc},
		Now:       realClock.Now,
	}, logger)

	items, err := blacklist.Parse(cfg.Trade.Blacklist, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("blacklist error")
	}
	world.SetPickupGuard(pickup.NewPolicy(cfg.Trade.PickupProtection, sessions, realClock, logger).Allow)

	worker := apptrade.NewWorker(cfg.Trade.WorkerQueue, logger)
	tradeSvc := apptrade.NewService(apptrade.Deps{
		Sessions:  sessions,
		Worker:    worker,
		Directory: world,
		Storage:   world,
		Inventory: world,
		Notifier:  notificationSvc,
		Items:     items,
		Clock:     realClock,
	}, apptrade.Config{
		ThroughWorlds:     cfg.Trade.ThroughWorlds,
		WithHiddenPlayers: cfg.Trade.WithHiddenPlayers,
		MaxDistance:       cfg.Trade.MaxDistance,
		RequestTimeout:    cfg.Trade.RequestTimeout,
		RequestCooldown:   cfg.Trade.RequestCooldown,
	}, logger)

	// API server
	apiServer := httpapi.NewServer(httpapi.Deps{
		Trade:         tradeSvc,
		History:       historySvc,
		Notifications: notificationSvc,
		World:         world,
		Ledger:        ledger,
		Hub:           sseHub,
	}, logger)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // event streams stay open
		IdleTimeout:  60 * time.Second,
	}

	// background loops
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = worker.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		_ = historySvc.Run(ctx)
	}()

	// start server
	go func() {
		logger.Info().
			Str("addr", cfg.ServerAddr).
			Bool("money", sessions.MoneyEnabled()).
			Int("blacklist_rules", items.Len()).
			Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	sseHub.Stop()
	_ = httpServer.Shutdown(ctxShutdown)
	if err := tradeSvc.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("trade shutdown failed")
	}
	cancel()
	wg.Wait()
	logger.Info().Msg("server stopped")
}

type pinger interface {
	Ping(ctx context.Context) error
}

// probeEconomy checks that the currency backend answers before money is
// offered in any session.
func probeEconomy(ctx context.Context, economy pinger, logger zerolog.Logger) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := economy.Ping(probeCtx); err != nil {
		logger.Warn().Err(err).Msg("economy unavailable, trading without money")
		return false
	}
	return true
}

package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go-tegro/cmd/tegro/config"
	"go-tegro/internal/tegro"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/data/database"
	"go-tegro/internal/tegro/data/dbrepository"
	"go-tegro/internal/tegro/ordersmonitor"
	"go-tegro/internal/tegro/service"
	"go-tegro/pkg/logging"
	"go-tegro/pkg/pgxstorage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelCtx()

	dbFactory := database.NewPgxDatabaseFactory(cfg.DB)
	storage, err := pgxstorage.New(rootCtx, dbFactory)
	if err != nil {
		logger.ErrorCtx(rootCtx, "Failed to connect to database", zap.Error(err))
		return
	}
	defer storage.Close()

	repository := dbrepository.New(storage, logger.Named("repository"))
	transactionManager := pgxstorage.NewTransactionsManager(storage)
	apiClient := apiclient.New(cfg.API, logger.Named("tegro-money"))

	ordersService := service.NewOrders(
		service.Config{ShopID: cfg.API.ShopID},
		transactionManager,
		repository,
		apiClient,
		logger,
	)
	paymentStatusService := service.NewPaymentStatus(transactionManager, repository, logger)

	server := tegro.New(cfg.Server, paymentStatusService, ordersService, ordersService, logger)

	var monitor *ordersmonitor.OrdersMonitor
	if cfg.MonitorEnabled() {
		monitor = ordersmonitor.NewOrdersMonitor(
			cfg.Monitor,
			repository,
			transactionManager,
			apiClient,
			logger.Named("orders-monitor"),
		)
	}

	if err := run(rootCtx, cfg, server, monitor, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func run(
	rootCtx context.Context,
	cfg *config.Config,
	server *tegro.Server,
	monitor *ordersmonitor.OrdersMonitor,
	logger *logging.ZapLogger,
) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if monitor != nil {
		g.Go(func() error {
			monitor.Run(ctx)
			return nil
		})
	}

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		if monitor != nil {
			monitor.Stop()
		}
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occurred: %w", err)
	}

	return nil
}

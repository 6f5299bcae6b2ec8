package tegro

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go-tegro/internal/tegro/handlers"
	"go-tegro/internal/tegro/middleware"
	"go-tegro/pkg/logging"
	"go.uber.org/zap"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func New(
	cfg Config,
	paymentStatusService handlers.PaymentStatusService,
	orderCreatingService handlers.OrderCreatingService,
	orderGettingService handlers.OrderGettingService,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr: cfg.ServerAddress,
		Handler: createMux(
			paymentStatusService,
			orderCreatingService,
			orderGettingService,
			logger,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	res := &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}

	return res
}

func (s *Server) Run() error {
	s.logger.InfoCtx(context.Background(), "server started", zap.String("address", s.cfg.ServerAddress))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	paymentStatusService handlers.PaymentStatusService,
	orderCreatingService handlers.OrderCreatingService,
	orderGettingService handlers.OrderGettingService,
	logger *logging.ZapLogger,
) *chi.Mux {
	paymentStatusHandler := handlers.NewPaymentStatusHandler(paymentStatusService, logger)
	orderCreatingHandler := handlers.NewOrderCreatingHandler(orderCreatingService, logger)
	orderGettingHandler := handlers.NewOrderGettingHandler(orderGettingService, logger)

	router := chi.NewRouter()
	router.Use(
		middleware.NewLoggerContext().CreateHandler,
		middleware.NewPanicRecover(logger).CreateHandler,
	)

	// Every method reaches the handler, which answers non-POST requests itself.
	router.HandleFunc("/payment_status/", paymentStatusHandler.ServeHTTP)

	router.Route("/api/orders", func(router chi.Router) {
		router.Post("/", orderCreatingHandler.ServeHTTP)
		router.Get("/{"+handlers.ReferenceURLParam+"}", orderGettingHandler.ServeHTTP)
	})

	return router
}

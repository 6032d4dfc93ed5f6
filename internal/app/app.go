package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/project/lending/config"
	"github.com/project/lending/db"
	"github.com/project/lending/internal/controller"
	"github.com/project/lending/internal/usecase/library"
	"github.com/project/lending/internal/usecase/outbox"
	"github.com/project/lending/internal/usecase/repository"
	"github.com/project/lending/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	shutDownSeconds          = 3
	readHeaderTimeoutSeconds = 5
)

func Run(log *zap.Logger, cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := db.SetupPostgres(ctx, cfg.PG.URL, log); err != nil {
		log.Error("can not migrate database", zap.Error(err))
		return
	}

	dbPool, err := newPool(ctx, cfg)
	if err != nil {
		log.Error("can not create pgxpool", zap.Error(err))
		return
	}
	defer dbPool.Close()

	shutdownTracing, err := setupTracing(ctx, cfg.Observability.JaegerURL)
	if err != nil {
		log.Error("can not set up tracing", zap.Error(err))
		return
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutDownSeconds*time.Second)
		defer cancelShutdown()
		logger.CheckError(shutdownTracing(shutdownCtx), log, "can not flush traces")
	}()

	repo := repository.New(logger.Enabled(log, cfg.Log.LogDBRepo), dbPool)
	transactor := repository.NewTransactor(logger.Enabled(log, cfg.Log.LogTransactor), dbPool)

	var loanEvents library.OutboxRepository
	if cfg.Outbox.Enabled {
		outboxRepository := repository.NewOutbox(dbPool, cfg.Outbox.AttemptsRetry)
		loanEvents = outboxRepository

		worker := runOutbox(ctx, cfg, logger.Enabled(log, cfg.Log.LogOutboxWorker), outboxRepository, transactor)
		defer worker.Wait()
	}

	useCases := library.New(
		logger.Enabled(log, cfg.Log.LogUseCase),
		repo, repo, repo,
		loanEvents,
		transactor,
		cfg.Loan.DefaultDays,
	)
	ctrl := controller.New(logger.Enabled(log, cfg.Log.LogController), useCases, useCases, useCases, dbPool)

	go runMetrics(ctx, cfg, log)
	runHTTP(ctx, cfg, log, newRouter(cfg, ctrl))

	// stops the outbox workers when the server exits on its own
	cancel()
}

func newPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.PG.URL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = cfg.PG.MaxConn

	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err = dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, err
	}

	return dbPool, nil
}

type routes interface {
	RegisterRoutes(r gin.IRouter)
}

func newRouter(cfg *config.Config, ctrl routes) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if lo.Contains(cfg.HTTP.CORSOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.HTTP.CORSOrigins
	}
	router.Use(cors.New(corsConfig))

	ctrl.RegisterRoutes(router)
	return router
}

func runHTTP(ctx context.Context, cfg *config.Config, log *zap.Logger, handler http.Handler) {
	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutDownSeconds*time.Second)
		defer cancel()

		logger.CheckError(server.Shutdown(shutdownCtx), log, "http server shutdown error")
	}()

	log.Info("http server listening at port", zap.String("port", cfg.HTTP.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server listen error", zap.Error(err))
	}
}

func runMetrics(ctx context.Context, cfg *config.Config, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              ":" + cfg.Observability.MetricsPort,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	log.Info("metrics listening at port", zap.String("port", cfg.Observability.MetricsPort))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics listen error", zap.Error(err))
	}
}

func runOutbox(
	ctx context.Context,
	cfg *config.Config,
	log *zap.Logger,
	outboxRepository outbox.Repository,
	transactor outbox.Transactor,
) outbox.Outbox {
	client := newOutboxClient()
	globalHandler := globalOutboxHandler(client, cfg.Outbox.BorrowSendURL, cfg.Outbox.ReturnSendURL)

	outboxService := outbox.New(log, outboxRepository, globalHandler, transactor)
	outboxService.Start(
		ctx,
		cfg.Outbox.Workers,
		cfg.Outbox.BatchSize,
		cfg.Outbox.WaitTimeMS,
		cfg.Outbox.InProgressTTLMS,
	)

	return outboxService
}

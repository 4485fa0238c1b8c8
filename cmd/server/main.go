package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"graduation-tickets/config"
	"graduation-tickets/internal/clock"
	"graduation-tickets/internal/codegen"
	"graduation-tickets/internal/database"
	"graduation-tickets/internal/handler"
	"graduation-tickets/internal/queue"
	"graduation-tickets/internal/quota"
	"graduation-tickets/internal/repository"
	"graduation-tickets/internal/service"
	"graduation-tickets/internal/worker"
	"graduation-tickets/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type stores struct {
	tickets repository.TicketRepository
	issuers repository.IssuerRepository
	audit   repository.AuditRepository
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L.Fatal("Failed to load config", zap.Error(err))
	}

	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	addr := flagSet.String("addr", cfg.Server.Addr, "HTTP listen address")
	store := flagSet.String("store", string(cfg.Ticketing.StoreBackend), "ticket store backend: postgres, redis or memory")
	auditQueue := flagSet.String("audit-queue", string(cfg.Ticketing.AuditQueue), "audit event queue: memory or redis")
	logLevel := flagSet.String("log-level", cfg.Log.Level, "log level")
	migrate := flagSet.Bool("migrate", cfg.Database.Migrate, "apply database migrations on startup")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg.Server.Addr = *addr
	cfg.Ticketing.StoreBackend = config.StoreBackend(*store)
	cfg.Ticketing.AuditQueue = config.QueueBackend(*auditQueue)
	cfg.Log.Level = *logLevel
	cfg.Database.Migrate = *migrate
	if err := cfg.Validate(); err != nil {
		logger.L.Fatal("Invalid config", zap.Error(err))
	}

	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		logger.L.Fatal("Invalid log level", zap.String("level", cfg.Log.Level), zap.Error(err))
	}
	defer logger.L.Sync()

	if err := run(cfg); err != nil {
		logger.L.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	log := logger.WithComponent("server")

	var pool *pgxpool.Pool
	if cfg.Ticketing.StoreBackend == config.StoreBackendPostgres {
		var err error
		pool, err = database.InitDatabase(&cfg.Database)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer pool.Close()
	}

	var rdb *redis.Client
	if cfg.Ticketing.StoreBackend == config.StoreBackendRedis || cfg.Ticketing.AuditQueue == config.QueueBackendRedis {
		var err error
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("initialize redis: %w", err)
		}
		defer rdb.Close()
	}

	policy := quota.NewPolicy()
	s := newStores(cfg, pool, rdb, policy)

	events, err := newEventQueue(cfg, rdb)
	if err != nil {
		return fmt.Errorf("initialize event queue: %w", err)
	}

	generator, err := codegen.New(cfg.Ticketing.CodeSecret)
	if err != nil {
		return err
	}

	systemClock := clock.NewSystem()
	issuanceService := service.NewIssuanceService(s.issuers, s.tickets, generator,
		service.WithClock(systemClock),
		service.WithPolicy(policy),
		service.WithEventQueue(events),
		service.WithMaxAttempts(cfg.Ticketing.IssueMaxAttempts),
		service.WithDefaultMaxTickets(cfg.Ticketing.DefaultMaxTickets),
	)
	validationService := service.NewValidationService(s.tickets, events, systemClock)
	ticketService := service.NewTicketService(s.tickets, s.audit)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	auditWorker := worker.NewAuditWorker(s.audit, events)
	if err := auditWorker.Start(workerCtx); err != nil {
		return fmt.Errorf("start audit worker: %w", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	handler.NewTicketHandler(issuanceService, validationService, ticketService).RegisterRoutes(router)
	handler.NewValidationHandler(validationService).RegisterRoutes(router)
	handler.NewIssuerHandler(issuanceService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("store", string(cfg.Ticketing.StoreBackend)),
			zap.String("audit_queue", string(cfg.Ticketing.AuditQueue)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	stopWorker()
	select {
	case <-auditWorker.Done():
	case <-ctx.Done():
		log.Warn("Audit worker did not stop in time")
	}
	return nil
}

func newStores(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, policy *quota.Policy) stores {
	switch cfg.Ticketing.StoreBackend {
	case config.StoreBackendPostgres:
		return stores{
			tickets: repository.NewTicketRepository(pool),
			issuers: repository.NewIssuerRepository(pool),
			audit:   repository.NewAuditRepository(pool),
		}
	case config.StoreBackendRedis:
		return stores{
			tickets: repository.NewRedisTicketRepository(rdb, policy),
			issuers: repository.NewRedisIssuerRepository(rdb, cfg.Ticketing.LockTTL),
			audit:   repository.NewRedisAuditRepository(rdb),
		}
	default:
		return stores{
			tickets: repository.NewMemoryTicketRepository(),
			issuers: repository.NewMemoryIssuerRepository(),
			audit:   repository.NewMemoryAuditRepository(),
		}
	}
}

func newEventQueue(cfg *config.Config, rdb *redis.Client) (queue.EventQueue, error) {
	if cfg.Ticketing.AuditQueue == config.QueueBackendRedis {
		return queue.NewRedisStreamEventQueue(rdb, "", nil)
	}
	return queue.NewEventQueue(cfg.Ticketing.AuditBufferSize), nil
}

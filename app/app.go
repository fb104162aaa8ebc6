// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankist/config"
	"bankist/db"
	"bankist/handler"
	"bankist/logger"
	"bankist/repository"
	"bankist/router"
	"bankist/service"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// App is the fully wired process: registry, services and HTTP router.
type App struct {
	Config       config.Config
	Clock        clockwork.Clock
	Registry     *prometheus.Registry
	Accounts     *repository.AccountRepository
	Hub          *service.Hub
	Auth         *service.AuthService
	Sessions     *service.SessionService
	Transactions *service.TransactionService
	AccountViews *service.AccountService
	Router       http.Handler

	DB    *sql.DB
	Redis *redis.Client
}

// New wires every layer from cfg. database and rdb are optional; without them
// the audit trail and the Redis event channel are off.
func New(cfg config.Config, clock clockwork.Clock, database *sql.DB, rdb *redis.Client) (*App, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)

	auth := service.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.PinCost, cfg.Auth.TokenTTL, clock)
	accounts, err := service.SeedRegistry(repository.DefaultSeed(), auth)
	if err != nil {
		return nil, fmt.Errorf("could not seed accounts: %w", err)
	}

	hub := service.NewHub()
	sinks := service.FanOut{hub}

	var audit repository.IAuditRepository
	if database != nil {
		auditRepo := repository.NewAuditRepository(database)
		audit = auditRepo
		sinks = append(sinks, service.NewAuditSink(auditRepo))
	}
	if rdb != nil {
		sinks = append(sinks, service.NewRedisPublisher(rdb, cfg.Events.RedisChannel))
	}

	sessions := service.NewSessionService(accounts, auth, clock, sinks, metrics, service.SessionOptions{
		TimeoutSeconds: cfg.Session.TimeoutSeconds,
		TickInterval:   cfg.Session.TickInterval,
	})
	transactions := service.NewTransactionService(sessions, accounts, auth, service.LoanOptions{
		Delay:           cfg.Loan.Delay,
		CollateralRatio: decimal.NewFromFloat(cfg.Loan.CollateralRatio),
	})
	accountViews := service.NewAccountService(sessions, accounts, audit)

	r := router.NewRouter(router.Handlers{
		Session:     handler.NewSessionHandler(sessions, accountViews, auth),
		Account:     handler.NewAccountHandler(accountViews),
		Transaction: handler.NewTransactionHandler(transactions),
		Stream:      handler.NewStreamHandler(hub),
		Auth:        handler.AuthMiddleware(auth, sessions),
	}, registry)

	return &App{
		Config:       cfg,
		Clock:        clock,
		Registry:     registry,
		Accounts:     accounts,
		Hub:          hub,
		Auth:         auth,
		Sessions:     sessions,
		Transactions: transactions,
		AccountViews: accountViews,
		Router:       r,
		DB:           database,
		Redis:        rdb,
	}, nil
}

// Shutdown ends the active session and drops loans still waiting for their delay.
func (a *App) Shutdown(ctx context.Context) {
	a.Transactions.Shutdown()
	a.Sessions.Shutdown(ctx)
}

func Run() {
	config.LoadConfig(".")
	cfg := config.AppConfig
	logger.Init(cfg.Log.Level)
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	var database *sql.DB
	if cfg.Audit.Enabled {
		if err := db.Migrate(cfg, cfg.Audit.MigrationsDir); err != nil {
			logger.Log.Fatalf("Error migrating the audit database: %v", err)
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			logger.Log.Fatalf("Error connecting to the database: %v", err)
		}
		database = conn
		defer database.Close()
	}

	var rdb *redis.Client
	if cfg.Events.RedisEnabled {
		client, err := db.ConnectRedis(cfg)
		if err != nil {
			logger.Log.Fatalf("Error connecting to Redis: %v", err)
		}
		rdb = client
		defer rdb.Close()
	}

	a, err := New(cfg, clockwork.NewRealClock(), database, rdb)
	if err != nil {
		logger.Log.Fatalf("Error building the application: %v", err)
	}

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.Shutdown(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

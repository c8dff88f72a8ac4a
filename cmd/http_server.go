package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/auth"
	"github.com/peopleops/hr-management/internal/core/events"
	"github.com/peopleops/hr-management/internal/email"
	"github.com/peopleops/hr-management/internal/employee"
	employeeStorage "github.com/peopleops/hr-management/internal/employee/storage"
	"github.com/peopleops/hr-management/internal/transport/graphql"
	"github.com/peopleops/hr-management/internal/transport/rest"
	"github.com/peopleops/hr-management/internal/user"
	userStorage "github.com/peopleops/hr-management/internal/user/storage"
	"github.com/peopleops/hr-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server exposing the GraphQL API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	SQLDB  *sql.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.SQLDB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}

	hasher := auth.NewHasher(config.Security.BCryptCost)
	tokens := auth.NewTokenIssuer(config.Security.JWTSecret, config.Security.AccessTokenTTL)

	userRepo := userStorage.NewUserRepository(db)
	userSvc := user.NewService(userRepo, hasher, log)
	authSvc := auth.NewService(user.NewCredentialStore(userSvc), hasher, tokens, log)
	guard := auth.NewGuard(tokens, log)

	bus := events.NewEventBus(log)
	employeeRepo := employeeStorage.NewEmployeeRepository(db)
	employeeSvc := employee.NewService(employeeRepo, bus, log)

	// Employee creation fans out to the email queue through the bus. The
	// worker process drains the queue; this process only enqueues.
	redisClient := email.NewRedisClient(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
	queue := email.NewRedisQueue(redisClient, config.Redis.QueueKey)
	dispatcher := email.NewDispatcher(queue, log, &email.LogObserver{Logger: log})
	bus.Subscribe(events.EventTypeEmployeeCreated, dispatcher.HandleEmployeeCreated)

	resolvers := graphql.NewResolvers(authSvc, userSvc, employeeSvc, guard, log)
	schema, err := resolvers.Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	router := chi.NewRouter()
	rest.RegisterRoutes(router, sqlDB, graphql.NewHandler(schema), log)

	return &Dependencies{
		Config: config,
		DB:     db,
		SQLDB:  sqlDB,
		Router: router,
		Logger: log,
	}, nil
}

// initDB opens the configured relational store. SQLite keeps local
// development self-contained; Postgres is the deployment target.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Source)
	case "sqlite":
		dialector = sqlite.Open(cfg.Source)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

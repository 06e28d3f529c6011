package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/external"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()

	if err := persistence.Seed(ctx, pool, *cfg, logger); err != nil {
		logger.Fatal("failed to seed reference data", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	severityRepo := repository.NewSeverityRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	subcategoryRepo := repository.NewSubcategoryRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	severityService := service.NewSeverityService(severityRepo)
	categoryService := service.NewCategoryService(categoryRepo, subcategoryRepo)
	subcategoryService := service.NewSubcategoryService(subcategoryRepo, categoryRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		DB:              pool,
		TxRunner:        repository.NewTxRunner(pool),
		TicketRepo:      ticketRepo,
		CategoryRepo:    categoryRepo,
		SubcategoryRepo: subcategoryRepo,
		SeverityRepo:    severityRepo,
		Comments:        external.NewCommentClient(cfg.External),
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Severities:     handlers.NewSeveritiesHandler(severityService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Subcategories:  handlers.NewSubcategoriesHandler(subcategoryService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

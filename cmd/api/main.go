package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/CoaxnTechnology/Betogether-API/internal/api/http"
	"github.com/CoaxnTechnology/Betogether-API/internal/api/http/handlers"
	"github.com/CoaxnTechnology/Betogether-API/internal/auth"
	"github.com/CoaxnTechnology/Betogether-API/internal/config"
	"github.com/CoaxnTechnology/Betogether-API/internal/events"
	"github.com/CoaxnTechnology/Betogether-API/internal/observability"
	"github.com/CoaxnTechnology/Betogether-API/internal/persistence"
	"github.com/CoaxnTechnology/Betogether-API/internal/repository"
	"github.com/CoaxnTechnology/Betogether-API/internal/service"
	"github.com/CoaxnTechnology/Betogether-API/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	fakeUserRepo := repository.NewFakeUserRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	categoryRepo := repository.NewCachedCategoryRepository(
		repository.NewCategoryRepository(pool), redis, cfg.Redis.CategoryTTL(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		AdminRepo:  adminRepo,
		Dispatcher: dispatcher,
	})
	categoryService := service.NewCategoryService(categoryRepo, dispatcher, logger)
	profileService := service.NewProfileService(userRepo)
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:     userRepo,
		FakeUserRepo: fakeUserRepo,
		CategoryRepo: categoryRepo,
		SettingsRepo: settingsRepo,
		Dispatcher:   dispatcher,
	}, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	if cfg.Seed.Categories {
		if err := categoryService.SeedDefaultCategories(ctx); err != nil {
			logger.Error("category seeding failed", zap.Error(err))
		}
	}

	gate := auth.NewGate(authService.TokenManager(), userRepo, adminRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	baseURL := cfg.App.BaseURL
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Guest:      handlers.NewGuestHandler(authService),
		Users:      handlers.NewUsersHandler(authService, profileService, baseURL),
		Profile:    handlers.NewProfileHandler(profileService, baseURL),
		Categories: handlers.NewCategoriesHandler(categoryService, baseURL),
		Admin:      handlers.NewAdminHandler(authService, adminService, categoryService, baseURL),
		Gate:       gate,
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

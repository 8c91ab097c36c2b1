package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	deliveryHTTP "github.com/frontandrew/ridematch/internal/delivery/http"
	"github.com/frontandrew/ridematch/internal/pkg/config"
	"github.com/frontandrew/ridematch/internal/pkg/database"
	"github.com/frontandrew/ridematch/internal/pkg/hash"
	"github.com/frontandrew/ridematch/internal/pkg/jwt"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/pkg/redis"
	"github.com/frontandrew/ridematch/internal/repository/postgres"
	"github.com/frontandrew/ridematch/internal/repository/redisstore"
	"github.com/frontandrew/ridematch/internal/usecase/auth"
	"github.com/frontandrew/ridematch/internal/usecase/availability"
	"github.com/frontandrew/ridematch/internal/usecase/intent"
	"github.com/frontandrew/ridematch/internal/usecase/match"
	"github.com/frontandrew/ridematch/migrations"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	log.Info("Starting RideMatch API server")

	// =========================================================================
	// Подключение к PostgreSQL
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err,
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if cfg.Database.AutoMigrate {
		sqlDB := database.OpenSQL(db)
		if err := migrations.Migrate(sqlDB); err != nil {
			log.Fatal("Failed to apply migrations", map[string]interface{}{
				"error": err,
			})
		}
		_ = sqlDB.Close()
		log.Info("Database migrations applied")
	}

	// =========================================================================
	// Подключение к Redis
	// =========================================================================

	redisClient, err := redis.NewClient(ctx, redis.Config{
		Addr:     cfg.Redis.Address(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err,
		})
	}
	defer redisClient.Close()

	log.Info("Connected to Redis", map[string]interface{}{
		"address": cfg.Redis.Address(),
	})

	// =========================================================================
	// Repositories и services
	// =========================================================================

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	intentRepo := postgres.NewPassengerIntentRepository(db)
	availabilityRepo := postgres.NewDriverAvailabilityRepository(db)
	matchRepo := postgres.NewIntentMatchRepository(db)
	denylist := redisstore.NewTokenDenylist(redisClient)

	tokenService := jwt.NewTokenService(
		cfg.JWT.SecretKey,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	authService := auth.NewService(userRepo, refreshTokenRepo, denylist, tokenService, hash.NewPasswordHasher(hash.DefaultCost), log)
	intentService := intent.NewService(intentRepo, log)
	availabilityService := availability.NewService(availabilityRepo, log)
	matchService := match.NewService(intentRepo, availabilityRepo, matchRepo, log)

	// =========================================================================
	// HTTP router
	// =========================================================================

	router := deliveryHTTP.NewRouter(
		deliveryHTTP.NewMatchHandler(matchService, log),
		deliveryHTTP.NewIntentHandler(intentService, log),
		deliveryHTTP.NewAvailabilityHandler(availabilityService, log),
		deliveryHTTP.NewAuthHandler(authService, log),
		deliveryHTTP.NewHealthHandler(map[string]deliveryHTTP.Pinger{
			"postgres": db,
			"redis":    redisClient,
		}, log),
		tokenService,
		denylist,
		cfg.CORS,
		log,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера и graceful shutdown
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", map[string]interface{}{
				"error": err,
			})
		}

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err,
			})
			_ = srv.Close()
		}

		log.Info("Server stopped gracefully")
	}
}

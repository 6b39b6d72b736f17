package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/fitness-helper/internal/api"
	"github.com/vladimiradmaev/fitness-helper/internal/bot"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/state"
	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	"github.com/vladimiradmaev/fitness-helper/internal/config"
	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
	"github.com/vladimiradmaev/fitness-helper/internal/repository"
	"github.com/vladimiradmaev/fitness-helper/internal/scheduler"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()
	logger.Info("Starting Fitness Helper", "timezone", cfg.Timezone, "db_driver", cfg.DB.Driver)

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)
	logger.Info("Database connection established and migrations completed")

	tables, err := calories.LoadTables(cfg.TablesFile)
	if err != nil {
		logger.Fatal("Failed to load calorie tables", "error", err, "path", cfg.TablesFile)
	}
	estimator := calories.New(tables)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories and services
	loc := cfg.Location()
	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewLogRepository(db)

	coach, err := services.NewCoachService(ctx, cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
	if err != nil {
		logger.Warn("Coach quotes fall back to the static list", "error", err)
		coach = services.NewCoachServiceWithGenerators()
	}
	defer coach.Close()

	userService := services.NewUserService(userRepo)
	foodLogService := services.NewFoodLogService(logRepo, estimator, loc)
	exerciseLogService := services.NewExerciseLogService(userRepo, logRepo, estimator, loc)
	reportService := services.NewReportService(logRepo, coach, loc)
	logger.Info("Services initialized successfully")

	var wg sync.WaitGroup

	server := api.NewServer(api.Config{Addr: cfg.APIAddr, Location: loc}, api.Dependencies{
		UserService:    userService,
		FoodLogSvc:     foodLogService,
		ExerciseLogSvc: exerciseLogService,
		ReportSvc:      reportService,
		Estimator:      estimator,
	})
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Run(ctx); err != nil {
			logger.Error("API server stopped with error", "error", err)
			stop()
		}
	}()

	if cfg.TelegramToken == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN is not set, running the HTTP API only")
	} else {
		var stateManager state.StateManager = state.NewManager()
		if cfg.Redis.Enabled() {
			redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
			if err != nil {
				logger.Fatal("Failed to connect to Redis", "error", err)
			}
			defer redisManager.Close()
			stateManager = redisManager
		}

		telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{
			UserService:    userService,
			FoodLogSvc:     foodLogService,
			ExerciseLogSvc: exerciseLogService,
			ReportSvc:      reportService,
			Estimator:      estimator,
		}, stateManager)
		if err != nil {
			logger.Fatal("Failed to create bot", "error", err)
		}

		digest, err := scheduler.NewDigest(cfg.DigestSchedule, loc, userService, reportService, telegramBot)
		if err != nil {
			logger.Fatal("Failed to schedule weekly digest", "error", err)
		}
		digest.Start()
		defer digest.Stop()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Bot stopped with error", "error", err)
				stop()
			}
		}()
	}

	logger.Info("Fitness Helper is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	logger.Info("Shutting down")
	wg.Wait()
}

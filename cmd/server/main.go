package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"proxym-fin/internal/api"
	"proxym-fin/internal/api/handlers"
	"proxym-fin/internal/repository"
	"proxym-fin/internal/service"
	"proxym-fin/pkg/auth"
	"proxym-fin/pkg/config"
	"proxym-fin/pkg/logger"
	"proxym-fin/pkg/postgres"

	"go.uber.org/zap"
)

// @title Proxym Finance Platform API
// @version 1.0
// @description Personal finance platform: users, products, transactions, AI recommendations and chat

// @contact.name API Support
// @contact.email support@proxym.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Proxym finance platform")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	productRepo := repository.NewProductRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	// Without a GigaChat credential the chat endpoint reports unavailable and
	// recommendations fall back to the spending-ratio heuristic.
	var llm service.TextGenerator
	if cfg.GigaChat.Enabled() {
		llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
		}
		defer llmService.Close()
		llm = llmService
	} else {
		appLogger.Warn("GIGACHAT_API_KEY not set, AI features disabled")
	}

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	userService := service.NewUserService(userRepo, appLogger)
	productService := service.NewProductService(productRepo, appLogger)
	txService := service.NewTransactionService(txRepo, userRepo, appLogger)
	recService := service.NewRecommendationService(productRepo, txRepo, userRepo, llm, appLogger)
	chatService := service.NewChatService(llm, appLogger)

	h := api.Handlers{
		Auth:            handlers.NewAuthHandler(authService, appLogger),
		Users:           handlers.NewUserHandler(userService, appLogger),
		Products:        handlers.NewProductHandler(productService, appLogger),
		Transactions:    handlers.NewTransactionHandler(txService, appLogger),
		Recommendations: handlers.NewRecommendationHandler(recService, appLogger),
		Chat:            handlers.NewChatHandler(chatService, appLogger),
	}

	app := api.SetupRouter(h, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyhub-backend/internal/config"
	"studyhub-backend/internal/database"
	"studyhub-backend/internal/events"
	"studyhub-backend/internal/handlers"
	"studyhub-backend/internal/logger"
	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/repository"
	"studyhub-backend/internal/router"
	"studyhub-backend/internal/services"
	"studyhub-backend/internal/websocket"
	"studyhub-backend/internal/worker"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}
	defer lg.Sync()
	lg.Info("starting StudyHub backend", "env", cfg.Env)

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("postgres connection failed", "error", err)
	}
	defer pool.Close()
	lg.Info("postgres connected")

	if err := database.RunMigrations(pool, "migrations"); err != nil {
		lg.Fatal("database migration failed", "error", err)
	}
	lg.Info("database migrations applied")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		lg.Fatal("redis connection failed", "error", err)
	}
	defer redisClients.Close()
	lg.Info("redis connected")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	sessionRepo := repository.NewStudySessionRepo(pool)
	doubtRepo := repository.NewDoubtRepo(pool)
	flashcardRepo := repository.NewFlashcardRepo(pool)
	pdfRepo := repository.NewPDFRepo(pool)

	// ──── Step 4: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiConcurrentReqs)
	if err != nil {
		lg.Fatal("gemini client initialization failed", "error", err)
	}
	defer geminiService.Close()
	lg.Info("gemini client initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, lg)
	fileExtractService := services.NewFileExtractService()
	pdfExportService := services.NewPDFExportService()

	bus := events.NewBus(redisClients.PubSub, lg)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	sessionHandler := handlers.NewStudySessionHandler(sessionRepo, bus)
	doubtHandler := handlers.NewDoubtHandler(doubtRepo, redisClients.Queue, bus, lg)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardRepo, geminiService)
	summaryHandler := handlers.NewSummaryHandler(geminiService, fileExtractService)
	pdfHandler := handlers.NewPDFHandler(pdfRepo, pdfExportService)
	dashboardHandler := handlers.NewDashboardHandler(sessionRepo, doubtRepo, flashcardRepo, pdfRepo)

	// ──── Step 5: Start Doubt Answer Workers ────
	workerPool := worker.NewPool(redisClients.Queue, geminiService, doubtRepo, bus, lg, cfg.WorkerCount)
	workerPool.Start()

	reminderScheduler := services.NewReminderScheduler(userRepo, sessionRepo, emailService, redisClients.Queue, lg)
	reminderScheduler.Start()

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(bus, cfg.JWTSecret, lg)
	lg.Info("websocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		sessionHandler,
		doubtHandler,
		flashcardHandler,
		summaryHandler,
		pdfHandler,
		dashboardHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		lg.Info("shutting down")
		workerPool.Stop()
		reminderScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	lg.Info("server ready", "addr", fmt.Sprintf("http://localhost:%s", cfg.Port))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		lg.Fatal("server error", "error", err)
	}
}

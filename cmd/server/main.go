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

	"planora-backend/internal/config"
	"planora-backend/internal/database"
	"planora-backend/internal/gcal"
	"planora-backend/internal/handlers"
	"planora-backend/internal/holidays"
	"planora-backend/internal/middleware"
	"planora-backend/internal/models"
	"planora-backend/internal/repository"
	"planora-backend/internal/router"
	"planora-backend/internal/services"
	"planora-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Planora Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	courseRepo := repository.NewCourseRepo(pool)
	planRunRepo := repository.NewPlanRunRepo(pool)

	// ──── Step 5: Initialize Google Calendar Service ────
	calendarService := gcal.NewService(gcal.Config{
		ClientID:             cfg.GoogleClientID,
		ClientSecret:         cfg.GoogleClientSecret,
		ExamsCalendarName:    cfg.ExamsCalendarName,
		ExamKeyword:          cfg.ExamKeyword,
		StudyCalendarSummary: cfg.StudyCalendarSummary,
		TimeZone:             cfg.DefaultTimeZone,
	}, userRepo)
	log.Println("✓ Google Calendar service initialized")

	// ──── Step 6: Initialize Holidays Client ────
	holidaysClient := holidays.NewClient(redisClients.Queue, cfg.HolidaysAPIKey)
	holidaysResolver := holidays.NewResolver(holidaysClient, cfg.HolidaysCountry)

	holidaysRefresher := holidays.NewRefresher(holidaysClient, cfg.HolidaysCountry)
	holidaysRefresher.Start()
	log.Println("✓ Holiday refresher started")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)

	defaultPrefs := models.Preferences{
		StudyStartTime: cfg.DefaultStudyStart,
		StudyEndTime:   cfg.DefaultStudyEnd,
		SessionMinutes: cfg.DefaultSessionMinutes,
		BreakMinutes:   cfg.DefaultBreakMinutes,
		TimeZone:       cfg.DefaultTimeZone,
	}

	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth, defaultPrefs)
	plannerService := services.NewPlannerService(
		userRepo,
		courseRepo,
		planRunRepo,
		calendarService,
		holidaysResolver,
		redisClients.Queue,
		redisClients.PubSub,
	)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	courseHandler := handlers.NewCourseHandler(courseRepo)
	planHandler := handlers.NewPlanHandler(plannerService)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		userHandler,
		courseHandler,
		planHandler,
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

		log.Println("Shutting down...")
		holidaysRefresher.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Planora Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

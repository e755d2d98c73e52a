package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawquest/internal/config"
	"pawquest/internal/database"
	"pawquest/internal/handlers"
	"pawquest/internal/repository"
	"pawquest/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	progressRepo := repository.NewProgressRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	// Seed the question bank on first run
	if err := service.SeedDefaultQuestions(questionRepo); err != nil {
		log.Printf("Warning: Failed to seed questions: %v", err)
	}

	// Initialize services
	reporter := service.NewLogReporter()
	store := service.NewStateStore(progressRepo, reporter, cfg.BackupDir, cfg.AutosaveInterval, cfg.IntegrityInterval)
	store.Start()

	pool := service.NewQuestionPool(questionRepo)
	emitter := service.NewEventEmitter()
	manager := service.NewGameManager(store, pool, emitter, reporter, service.EngineOptions{
		QuestionSeconds:  cfg.QuestionTimerSeconds,
		ExtraTimeSeconds: cfg.ExtraTimeSeconds,
	})

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(manager)
	progressHandler := handlers.NewProgressHandler(store)
	eventsHandler := handlers.NewEventsHandler(emitter)

	// Setup routes
	mux := http.NewServeMux()

	// Game routes
	mux.HandleFunc("POST /api/game/start/{path}", gameHandler.StartPath)
	mux.HandleFunc("GET /api/game/state", gameHandler.State)
	mux.HandleFunc("GET /api/game/question", gameHandler.CurrentQuestion)
	mux.HandleFunc("POST /api/game/answer", gameHandler.SubmitAnswer)
	mux.HandleFunc("POST /api/game/powerup", gameHandler.UsePowerUp)
	mux.HandleFunc("POST /api/game/pause", gameHandler.Pause)
	mux.HandleFunc("POST /api/game/resume", gameHandler.Resume)
	mux.HandleFunc("POST /api/game/exit", gameHandler.Exit)

	// Progress routes
	mux.HandleFunc("GET /api/progress", progressHandler.ListProgress)
	mux.HandleFunc("GET /api/progress/{path}", progressHandler.GetProgress)
	mux.HandleFunc("POST /api/progress/{path}/reset", progressHandler.ResetProgress)

	// Event stream
	mux.HandleFunc("GET /api/events", eventsHandler.Stream)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Stop accepting requests and let in-flight ones finish
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Warning: Server shutdown: %v", err)
	}

	// Flush the active session and any dirty progress before exit
	if err := manager.Shutdown(); err != nil {
		log.Printf("Warning: Failed to flush active session: %v", err)
	}
	if err := store.Close(); err != nil {
		log.Printf("Warning: Failed to flush state store: %v", err)
	}
}

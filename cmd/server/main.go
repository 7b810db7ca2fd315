package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tmgasek/typing-game-server/internal/config"
	httpHandler "github.com/tmgasek/typing-game-server/internal/delivery/http"
	"github.com/tmgasek/typing-game-server/internal/delivery/ws"
	"github.com/tmgasek/typing-game-server/internal/game"
	"github.com/tmgasek/typing-game-server/internal/middleware"
	"github.com/tmgasek/typing-game-server/internal/usecase"
)

func main() {
	// Load .env file (ignore error if not exists, e.g. in production)
	_ = godotenv.Load()

	// Reload config after loading .env
	config.AppConfig = config.LoadFromEnv()
	cfg := config.AppConfig

	// Configure logging
	if cfg.LogLevel == "silent" || cfg.LogLevel == "off" {
		log.SetOutput(io.Discard)
	}

	// Initialize dependencies
	registry := game.NewRegistry(cfg.MaxHistorySize)
	generator := usecase.NewQuoteGenerator()
	hub := ws.NewHub()
	service := game.NewService(registry, hub, generator, cfg.WordCount)
	handler := httpHandler.NewHandler(hub, service)

	// Setup routes
	mux := http.NewServeMux()

	// Liveness check
	mux.HandleFunc("/", handler.HandleHealth)

	// WebSocket route with rate limiting
	mux.HandleFunc("/ws", middleware.RateLimitFunc(middleware.WebSocketLimiter, handler.HandleWebSocket))

	// API routes with rate limiting
	mux.HandleFunc("/api/rooms", middleware.RateLimitFunc(middleware.APILimiter, handler.HandleListRooms))

	// Apply security headers middleware to all requests
	securedHandler := middleware.SecurityHeaders(mux)

	// Create server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      securedHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("typing game server listening at http://%s:%s", cfg.Host, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

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

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/database"
	"chatbot-backend/internal/handlers"
	"chatbot-backend/internal/repository"
	"chatbot-backend/internal/router"
	"chatbot-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Chatbot Backend...")

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

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 4: Wire Services ────
	messageRepo := repository.NewMessageRepo(pool)
	ollamaService := services.NewOllamaService(cfg.OllamaURL, cfg.OllamaModel, time.Duration(cfg.OllamaTimeoutSec)*time.Second)
	chatService := services.NewChatService(messageRepo, ollamaService)
	messageHandler := handlers.NewMessageHandler(chatService, cfg.IsDevelopment())

	// ──── Step 5: Start HTTP Server ────
	r := router.New(messageHandler, cfg.FrontendURL)

	// No WriteTimeout: /send blocks on the inference call, which is
	// bounded by OLLAMA_TIMEOUT_SECONDS instead.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Chatbot Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat UI: http://localhost:%s/", cfg.Port)
	log.Printf("  Ollama:  %s (model %s)", cfg.OllamaURL, cfg.OllamaModel)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UpikeMR/talking-agent/internal/api"
	"github.com/UpikeMR/talking-agent/internal/config"
	"github.com/UpikeMR/talking-agent/internal/services"
)

func main() {
	log.Println("Starting Talking Agent API...")

	// Load configuration (also materializes the TTS credential file)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Conversation provider
	var conversationSvc services.ConversationService
	switch cfg.ConversationProvider {
	case "openai":
		conversationSvc = services.NewOpenAIService(cfg.OpenAIKey)
		log.Println("Conversation provider: OpenAI (Whisper + chat)")
	default:
		conversationSvc = services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Printf("Conversation provider: Gemini (model: %s)", cfg.GeminiModel)
	}

	// TTS provider — ElevenLabs when its key is set, Google Cloud TTS otherwise
	var ttsSvc services.TTSService
	if cfg.ElevenLabsKey != "" {
		ttsSvc = services.NewElevenLabsService(cfg.ElevenLabsKey, cfg.ElevenLabsURL, cfg.ElevenLabsVoiceID)
		log.Printf("TTS provider: ElevenLabs (voice: %s)", cfg.ElevenLabsVoiceID)
	} else {
		ttsSvc = services.NewGoogleTTSService(cfg.TTSCredentialsPath)
		log.Println("TTS provider: Google Cloud Text-to-Speech (en-US, neutral, LINEAR16)")
	}

	// Create API handler
	handler := api.NewHandler(conversationSvc, ttsSvc,
		time.Duration(cfg.ConversationTimeoutSeconds)*time.Second)
	router := api.NewRouter(handler, api.RouterConfig{
		CorsAllowedOrigins:         cfg.CorsAllowedOrigins,
		MaxUploadBytes:             cfg.MaxUploadBytes,
		MaxConcurrentConversations: int64(cfg.MaxConcurrentConversations),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("API server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

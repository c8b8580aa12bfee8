package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/UpikeMR/talking-agent/internal/models"
	"github.com/UpikeMR/talking-agent/internal/services"
)

type Handler struct {
	conversation services.ConversationService
	tts          services.TTSService
	timeout      time.Duration // bound on the whole audio->text->audio pipeline, 0 = none
}

func NewHandler(conversation services.ConversationService, tts services.TTSService, timeout time.Duration) *Handler {
	return &Handler{
		conversation: conversation,
		tts:          tts,
		timeout:      timeout,
	}
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "online",
		Message: "Talking Agent Backend is running",
	})
}

// Test handles GET /test and GET /api/test
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Message: "Backend is running and CORS should be working",
	})
}

// Conversation handles POST /conversation and POST /api/conversation.
// It reads the uploaded audio, asks the generative model for a text reply,
// synthesizes the reply to speech, and streams the WAV bytes back.
func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		if isBodyTooLarge(err) {
			respondError(w, http.StatusRequestEntityTooLarge, "uploaded audio exceeds the size limit")
			return
		}
		respondError(w, http.StatusBadRequest, `multipart form field "audio" is required`)
		return
	}
	defer file.Close()

	audioData, err := io.ReadAll(file)
	if err != nil {
		if isBodyTooLarge(err) {
			respondError(w, http.StatusRequestEntityTooLarge, "uploaded audio exceeds the size limit")
			return
		}
		respondError(w, http.StatusBadRequest, "failed to read uploaded audio")
		return
	}

	if len(audioData) == 0 {
		respondError(w, http.StatusBadRequest, "uploaded audio is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !isKnownAudioType(header.Filename, contentType) {
		// Advisory only — log the oddity and carry on.
		log.Printf("[Conversation] Received file %q with unexpected content type %q", header.Filename, contentType)
	}
	log.Printf("[Conversation] Received audio: %s, size: %d bytes", header.Filename, len(audioData))

	text, err := h.conversation.Converse(ctx, audioData, contentType)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	speech, err := h.tts.Synthesize(ctx, text)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", "inline; filename=response.wav")
	w.Header().Set("X-Conversation-ID", uuid.New().String())
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, bytes.NewReader(speech.AudioData)); err != nil {
		// Headers are gone; nothing to do but note the broken connection.
		log.Printf("[Conversation] Failed to stream response audio: %v", err)
	}
}

// isKnownAudioType mirrors the permissive upload check: a .wav filename or
// any of the content types browsers commonly record with.
func isKnownAudioType(filename, contentType string) bool {
	if strings.HasSuffix(filename, ".wav") {
		return true
	}
	switch contentType {
	case "audio/wav", "audio/wave", "audio/x-wav", "audio/webm", "audio/ogg", "audio/mpeg":
		return true
	}
	return false
}

// isBodyTooLarge reports whether err originates from the MaxBytesReader cap.
// The multipart reader does not always preserve the typed error, so the
// message text is checked as a fallback.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

// respondProviderError maps pipeline failures onto the wire contract: every
// provider-side failure is a 500 carrying a human-readable detail string.
func respondProviderError(w http.ResponseWriter, err error) {
	var perr *models.ProxyError
	if errors.As(err, &perr) {
		respondError(w, http.StatusInternalServerError, perr.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing request: %v", err))
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, models.ErrorResponse{Detail: detail})
}

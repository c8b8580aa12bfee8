package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/UpikeMR/talking-agent/internal/audio"
	"github.com/UpikeMR/talking-agent/internal/models"
)

// ---------------------------------------------------------------------------
// ElevenLabs Text-to-Speech Service
// Alternative synthesis provider, used when ELEVENLABS_API_KEY is set.
// The API returns raw PCM; the response is wrapped into a WAV container so
// the caller-facing contract (audio/wav) is identical to Google TTS.
// ---------------------------------------------------------------------------

const (
	elevenLabsDefaultURL   = "https://api.elevenlabs.io"
	elevenLabsDefaultModel = "eleven_flash_v2_5"
	elevenLabsDefaultVoice = "pNInz6obpgDQGcFmaJgB"
	elevenLabsOutputFormat = "pcm_24000" // raw 16-bit PCM, wrapped into WAV below
	elevenLabsSampleRate   = 24000
)

// ElevenLabsService handles text-to-speech via the ElevenLabs REST API.
type ElevenLabsService struct {
	apiKey  string
	baseURL string
	voiceID string
	modelID string
	client  *http.Client
}

// Ensure ElevenLabsService implements TTSService at compile time.
var _ TTSService = (*ElevenLabsService)(nil)

// NewElevenLabsService creates an ElevenLabs TTS service.
// baseURL and voiceID fall back to defaults when empty; baseURL is
// overridable for tests.
func NewElevenLabsService(apiKey, baseURL, voiceID string) *ElevenLabsService {
	if baseURL == "" {
		baseURL = elevenLabsDefaultURL
	}
	if voiceID == "" {
		voiceID = elevenLabsDefaultVoice
	}
	return &ElevenLabsService{
		apiKey:  apiKey,
		baseURL: baseURL,
		voiceID: voiceID,
		modelID: elevenLabsDefaultModel,
		client:  &http.Client{Timeout: 90 * time.Second},
	}
}

type elevenLabsRequest struct {
	Text          string                   `json:"text"`
	ModelID       string                   `json:"model_id"`
	VoiceSettings *elevenLabsVoiceSettings `json:"voice_settings,omitempty"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to speech and wraps the PCM result in WAV.
// Implements the TTSService interface.
func (s *ElevenLabsService) Synthesize(ctx context.Context, text string) (*TTSResponse, error) {
	if s.apiKey == "" {
		return nil, models.NewMissingCredentials("ELEVENLABS_API_KEY not configured")
	}

	reqBody := elevenLabsRequest{
		Text:    text,
		ModelID: s.modelID,
		VoiceSettings: &elevenLabsVoiceSettings{
			Stability:       0.60,
			SimilarityBoost: 0.80,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, models.NewProviderError("failed to marshal ElevenLabs request", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		s.baseURL, s.voiceID, elevenLabsOutputFormat)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, models.NewProviderError("failed to create ElevenLabs request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	log.Printf("[ElevenLabs] Synthesizing speech (voiceID=%s, model=%s, textLen=%d)",
		s.voiceID, s.modelID, len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, models.NewProviderError("ElevenLabs request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, models.NewProviderError(
			fmt.Sprintf("ElevenLabs returned status %d: %s", resp.StatusCode, string(body)), nil)
	}

	// The response body IS the raw PCM audio.
	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewProviderError("failed to read ElevenLabs audio response", err)
	}

	if len(pcm) == 0 {
		return nil, models.NewProviderError("ElevenLabs returned empty audio", nil)
	}

	wavData, err := audio.WrapPCM16(pcm, elevenLabsSampleRate, 1)
	if err != nil {
		return nil, models.NewProviderError("failed to wrap ElevenLabs audio as WAV", err)
	}

	log.Printf("[ElevenLabs] Speech synthesized (%d PCM bytes)", len(pcm))

	return &TTSResponse{
		AudioData:  wavData,
		SampleRate: elevenLabsSampleRate,
		Format:     "wav",
	}, nil
}

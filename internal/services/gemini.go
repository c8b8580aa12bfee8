package services

import (
	"context"
	"log"
	"mime"
	"strings"

	"google.golang.org/genai"

	"github.com/UpikeMR/talking-agent/internal/models"
)

// defaultGeminiModel is the tuned conversational assistant model.
const defaultGeminiModel = "talking-agent"

// GeminiService answers uploaded audio via the Gemini API. The audio is
// passed as an inline-data part carrying an explicit MIME type — the current
// generateContent contract takes structured parts, not bare bytes.
type GeminiService struct {
	apiKey string
	model  string
}

// Ensure GeminiService implements ConversationService at compile time.
var _ ConversationService = (*GeminiService)(nil)

// NewGeminiService creates a Gemini conversation service.
// model defaults to the tuned talking-agent model when empty.
func NewGeminiService(apiKey, model string) *GeminiService {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
	}
}

// Converse sends the audio to Gemini and returns the model's text reply.
// Implements the ConversationService interface.
func (s *GeminiService) Converse(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if s.apiKey == "" {
		return "", models.NewMissingCredentials("GEMINI_API_KEY not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", models.NewProviderError("failed to initialize Gemini model", err)
	}

	normalized := NormalizeAudioMIME(mimeType)
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(audio, normalized),
		}, genai.RoleUser),
	}

	log.Printf("[Gemini] Sending conversation turn (model=%s, audio=%d bytes, mime=%s)",
		s.model, len(audio), normalized)

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", models.NewProviderError("error processing with Gemini", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", models.NewEmptyModelResponse("no response from AI assistant")
	}

	log.Printf("[Gemini] Reply received (%d chars)", len(text))
	return text, nil
}

// NormalizeAudioMIME maps the uploader's declared content type onto one the
// generative API accepts. Unknown types pass through unchanged — validation
// is advisory only.
func NormalizeAudioMIME(contentType string) string {
	mt := contentType
	if mt != "" {
		if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
			mt = parsed
		}
	}

	switch mt {
	case "", "application/octet-stream":
		// Browsers recording via MediaRecorder sometimes omit the type.
		return "audio/wav"
	case "audio/wave", "audio/x-wav", "audio/vnd.wave":
		return "audio/wav"
	default:
		return mt
	}
}

package services

import (
	"bytes"
	"context"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/UpikeMR/talking-agent/internal/models"
)

const (
	openAIChatModel = "gpt-4o-mini"

	// conversationSystemPrompt shapes the chat reply so the synthesized
	// audio sounds like a spoken answer, not an essay.
	conversationSystemPrompt = "You are a friendly voice assistant. Reply to what the user said " +
		"conversationally, in a few short sentences suitable for being read aloud."
)

// OpenAIService is the alternative conversation backend: the upload is
// transcribed with Whisper, then answered with a chat completion. Two calls
// instead of Gemini's one, but the same contract to the handler.
type OpenAIService struct {
	apiKey string
	client *openai.Client
}

// Ensure OpenAIService implements ConversationService at compile time.
var _ ConversationService = (*OpenAIService)(nil)

func NewOpenAIService(apiKey string) *OpenAIService {
	return &OpenAIService{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// Converse transcribes the audio and generates a conversational reply.
// Implements the ConversationService interface.
func (s *OpenAIService) Converse(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if s.apiKey == "" {
		return "", models.NewMissingCredentials("OPENAI_API_KEY not configured")
	}

	transcription, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: transcriptionFilename(mimeType), // extension drives format detection
	})
	if err != nil {
		return "", models.NewProviderError("error transcribing audio", err)
	}

	utterance := strings.TrimSpace(transcription.Text)
	if utterance == "" {
		return "", models.NewEmptyModelResponse("no speech recognized in uploaded audio")
	}

	log.Printf("[OpenAI] Transcribed %d bytes of audio (%d chars)", len(audio), len(utterance))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openAIChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: conversationSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: utterance,
			},
		},
	})
	if err != nil {
		return "", models.NewProviderError("error processing with OpenAI", err)
	}

	if len(resp.Choices) == 0 {
		return "", models.NewEmptyModelResponse("no response from AI assistant")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", models.NewEmptyModelResponse("no response from AI assistant")
	}

	log.Printf("[OpenAI] Reply received (%d chars)", len(reply))
	return reply, nil
}

// transcriptionFilename picks a synthetic filename whose extension matches
// the uploaded content type, since the transcription API infers the codec
// from the extension rather than a declared MIME type.
func transcriptionFilename(mimeType string) string {
	switch NormalizeAudioMIME(mimeType) {
	case "audio/webm":
		return "audio.webm"
	case "audio/ogg":
		return "audio.ogg"
	case "audio/mpeg", "audio/mp3":
		return "audio.mp3"
	case "audio/mp4", "audio/m4a":
		return "audio.m4a"
	default:
		return "audio.wav"
	}
}

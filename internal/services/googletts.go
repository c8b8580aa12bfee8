package services

import (
	"context"
	"fmt"
	"log"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/UpikeMR/talking-agent/internal/models"
)

// ---------------------------------------------------------------------------
// Google Cloud Text-to-Speech Service
// Default synthesis provider: en-US neutral voice, LINEAR16 encoding. The
// LINEAR16 response already carries a WAV header, so the bytes go straight
// to the caller without re-wrapping.
// ---------------------------------------------------------------------------

const googleTTSSampleRate = 24000

// GoogleTTSService handles text-to-speech via the Cloud Text-to-Speech API.
type GoogleTTSService struct {
	credentialsPath string // empty = fall back to ambient ADC lookup
	languageCode    string
}

// Ensure GoogleTTSService implements TTSService at compile time.
var _ TTSService = (*GoogleTTSService)(nil)

// NewGoogleTTSService creates a Google TTS service. credentialsPath points at
// the materialized service-account file; when empty the client falls back to
// application default credentials.
func NewGoogleTTSService(credentialsPath string) *GoogleTTSService {
	return &GoogleTTSService{
		credentialsPath: credentialsPath,
		languageCode:    "en-US",
	}
}

// Synthesize converts text to a WAV byte stream.
// Implements the TTSService interface.
func (s *GoogleTTSService) Synthesize(ctx context.Context, text string) (*TTSResponse, error) {
	var opts []option.ClientOption
	if s.credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentialsPath))
	}

	// Credential resolution happens here, so a missing or unreadable blob
	// fails the request rather than the process.
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, models.NewMissingCredentials(
			fmt.Sprintf("failed to initialize Text-to-Speech client (check TTS_CREDENTIALS_JSON): %v", err))
	}
	defer client.Close()

	resp, err := client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: s.languageCode,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: googleTTSSampleRate,
		},
	})
	if err != nil {
		return nil, models.NewProviderError("error with Text-to-Speech", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, models.NewProviderError("Text-to-Speech returned empty audio", nil)
	}

	log.Printf("[GoogleTTS] Speech synthesized (%d chars -> %d bytes)", len(text), len(resp.AudioContent))

	return &TTSResponse{
		AudioData:  resp.AudioContent,
		SampleRate: googleTTSSampleRate,
		Format:     "wav",
	}, nil
}

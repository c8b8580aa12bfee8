package services

import "context"

// ---------------------------------------------------------------------------
// TTSService — common interface for text-to-speech providers
// Both Google Cloud TTS and ElevenLabs implement this interface so main.go
// can pick whichever is configured without the handler knowing the provider.
// ---------------------------------------------------------------------------

// TTSResponse is the common response type from any TTS provider.
// AudioData is always a complete WAV container ready to stream to the caller.
type TTSResponse struct {
	AudioData  []byte
	SampleRate int
	Format     string // always "wav" for this service
}

// TTSService is the interface that any TTS provider must implement.
type TTSService interface {
	// Synthesize converts text to speech audio in a WAV container using the
	// provider's default voice settings.
	Synthesize(ctx context.Context, text string) (*TTSResponse, error)
}

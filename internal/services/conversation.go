package services

import "context"

// ---------------------------------------------------------------------------
// ConversationService — common interface for generative conversation providers
// Both Gemini and OpenAI implement this interface so the HTTP handler can use
// whichever is configured without knowing the underlying provider.
// ---------------------------------------------------------------------------

// ConversationService is the interface that any generative backend must
// implement to answer an uploaded audio utterance.
type ConversationService interface {
	// Converse sends one audio utterance to the generative model and returns
	// the assistant's text reply. mimeType is the content type declared by
	// the uploader (advisory — providers may normalize it).
	Converse(ctx context.Context, audio []byte, mimeType string) (string, error)
}

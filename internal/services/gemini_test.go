package services

import (
	"context"
	"errors"
	"testing"

	"github.com/UpikeMR/talking-agent/internal/models"
)

func TestNormalizeAudioMIME(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "audio/wav"},
		{"application/octet-stream", "audio/wav"},
		{"audio/wav", "audio/wav"},
		{"audio/wave", "audio/wav"},
		{"audio/x-wav", "audio/wav"},
		{"audio/vnd.wave", "audio/wav"},
		{"audio/webm", "audio/webm"},
		{"audio/webm;codecs=opus", "audio/webm"},
		{"audio/ogg; codecs=vorbis", "audio/ogg"},
		{"audio/mpeg", "audio/mpeg"},
	}

	for _, tt := range tests {
		if got := NormalizeAudioMIME(tt.in); got != tt.want {
			t.Errorf("NormalizeAudioMIME(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeminiConverseWithoutKey(t *testing.T) {
	svc := NewGeminiService("", "")

	_, err := svc.Converse(context.Background(), []byte{0x01}, "audio/wav")
	if err == nil {
		t.Fatal("expected error with no API key")
	}

	var perr *models.ProxyError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *models.ProxyError, got %T", err)
	}
	if perr.Kind != models.ErrMissingCredentials {
		t.Errorf("expected kind %q, got %q", models.ErrMissingCredentials, perr.Kind)
	}
}

func TestGeminiDefaultModel(t *testing.T) {
	svc := NewGeminiService("key", "")
	if svc.model != "talking-agent" {
		t.Errorf("expected default model talking-agent, got %s", svc.model)
	}

	svc = NewGeminiService("key", "gemini-2.0-flash")
	if svc.model != "gemini-2.0-flash" {
		t.Errorf("expected model override, got %s", svc.model)
	}
}

package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/UpikeMR/talking-agent/internal/audio"
	"github.com/UpikeMR/talking-agent/internal/models"
)

func TestElevenLabsSynthesize(t *testing.T) {
	pcm := make([]byte, 4800) // 0.1s of silence at 24kHz mono

	var gotPath, gotKey, gotFormat string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		gotFormat = r.URL.Query().Get("output_format")
		w.Write(pcm)
	}))
	defer ts.Close()

	svc := NewElevenLabsService("test-key", ts.URL, "voice-123")

	resp, err := svc.Synthesize(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("expected xi-api-key header, got %q", gotKey)
	}
	if !strings.Contains(gotPath, "/v1/text-to-speech/voice-123") {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if gotFormat != "pcm_24000" {
		t.Errorf("expected pcm_24000 output format, got %q", gotFormat)
	}

	if resp.Format != "wav" {
		t.Errorf("expected wav format, got %s", resp.Format)
	}
	if err := audio.Validate(resp.AudioData); err != nil {
		t.Errorf("response is not valid WAV: %v", err)
	}
	if len(resp.AudioData) != audio.HeaderSize+len(pcm) {
		t.Errorf("expected %d bytes, got %d", audio.HeaderSize+len(pcm), len(resp.AudioData))
	}
}

func TestElevenLabsSynthesizeUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid voice"}`, http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	svc := NewElevenLabsService("test-key", ts.URL, "")

	_, err := svc.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("expected status code in error, got: %v", err)
	}

	var perr *models.ProxyError
	if !errors.As(err, &perr) || perr.Kind != models.ErrProvider {
		t.Errorf("expected provider error kind, got %v", err)
	}
}

func TestElevenLabsSynthesizeEmptyAudio(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	svc := NewElevenLabsService("test-key", ts.URL, "")

	_, err := svc.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for empty audio body")
	}
	if !strings.Contains(err.Error(), "empty audio") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestElevenLabsSynthesizeWithoutKey(t *testing.T) {
	svc := NewElevenLabsService("", "", "")

	_, err := svc.Synthesize(context.Background(), "hello")
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

// Package audio provides minimal WAV container helpers for 16-bit linear PCM.
// The proxy never decodes audio content; it only wraps raw synthesizer output
// in a container the caller can play, and validates what it streams back.
package audio

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the canonical 44-byte PCM WAV header this package
// reads and writes. Extended headers (extra chunks before "data") are not
// supported.
const HeaderSize = 44

// WrapPCM16 wraps raw little-endian 16-bit PCM bytes in a WAV container.
func WrapPCM16(pcm []byte, sampleRate, channels int) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("cannot wrap empty PCM data")
	}
	if len(pcm)%2 != 0 {
		return nil, fmt.Errorf("PCM-16 data must have even length, got %d bytes", len(pcm))
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("channel count must be positive, got %d", channels)
	}

	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign
	dataSize := uint32(len(pcm))

	out := make([]byte, HeaderSize+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], 36+dataSize)
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], dataSize)
	copy(out[HeaderSize:], pcm)

	return out, nil
}

// Validate checks that data starts with a well-formed PCM WAV header.
func Validate(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("WAV data too short: need at least %d bytes, got %d", HeaderSize, len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return fmt.Errorf("invalid WAV file: missing WAVE format")
	}
	if string(data[12:16]) != "fmt " {
		return fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if string(data[36:40]) != "data" {
		return fmt.Errorf("invalid WAV file: missing data chunk")
	}
	if format := binary.LittleEndian.Uint16(data[20:22]); format != 1 {
		return fmt.Errorf("unsupported audio format: %d (only PCM is supported)", format)
	}
	return nil
}

// Duration returns the playback length of a PCM WAV file in seconds.
func Duration(data []byte) (float64, error) {
	if err := Validate(data); err != nil {
		return 0, err
	}

	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	byteRate := binary.LittleEndian.Uint32(data[28:32])
	if sampleRate == 0 || byteRate == 0 {
		return 0, fmt.Errorf("invalid WAV header: zero sample or byte rate")
	}

	dataSize := binary.LittleEndian.Uint32(data[40:44])
	return float64(dataSize) / float64(byteRate), nil
}

// Package format validates uploaded media before any provider call is made.
// All checks are pure predicates over the declared MIME type and byte length;
// nothing here touches the file contents.
package format

import (
	"path/filepath"
	"strings"

	"github.com/oleynichenko/ai-tools-api/internal/domain"
)

const (
	// MaxImageBytes is the upload ceiling for the receipt path.
	MaxImageBytes = 10 << 20
	// MaxAudioBytes is the upload ceiling for the audio path (Whisper limit).
	MaxAudioBytes = 2 << 20
)

// supportedAudioMIME is the fixed whitelist for the audio path, mapped 1:1
// to the extensions in audioExtMIME.
var supportedAudioMIME = map[string]bool{
	"audio/mpeg":     true, // mp3
	"audio/wav":      true,
	"audio/flac":     true,
	"audio/mp4":      true, // m4a
	"audio/ogg":      true,
	"audio/webm":     true,
	"audio/aac":      true,
	"audio/x-ms-wma": true, // wma
}

var audioExtMIME = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"flac": "audio/flac",
	"m4a":  "audio/mp4",
	"ogg":  "audio/ogg",
	"webm": "audio/webm",
	"aac":  "audio/aac",
	"wma":  "audio/x-ms-wma",
}

var supportedAudioFormats = []string{"mp3", "wav", "flac", "m4a", "ogg", "webm", "aac", "wma"}

// ValidateImage accepts any image/* MIME type up to MaxImageBytes.
func ValidateImage(mimeType string, size int64) error {
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.ErrUnsupportedFileType
	}
	return validateSize(size, MaxImageBytes)
}

// ValidateAudio accepts only whitelisted audio MIME types up to MaxAudioBytes.
func ValidateAudio(mimeType string, size int64) error {
	if !supportedAudioMIME[mimeType] {
		return domain.ErrUnsupportedFileType
	}
	return validateSize(size, MaxAudioBytes)
}

func validateSize(size, max int64) error {
	if size <= 0 {
		return domain.ErrEmptyFile
	}
	if size > max {
		return domain.ErrFileTooLarge
	}
	return nil
}

// AudioMIMEForFilename maps a filename extension to the MIME hint sent with
// the transcription call. Unrecognized extensions fall back to audio/mpeg;
// this is a best-effort hint, not a second validation pass.
func AudioMIMEForFilename(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if mime, ok := audioExtMIME[ext]; ok {
		return mime
	}
	return "audio/mpeg"
}

// SupportedAudioFormats returns the extensions accepted on the audio path,
// for use in error messages.
func SupportedAudioFormats() []string {
	out := make([]string, len(supportedAudioFormats))
	copy(out, supportedAudioFormats)
	return out
}

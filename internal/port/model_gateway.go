package port

import (
	"context"
	"encoding/json"
	"time"
)

// ChatInput carries one chat-completion request: a fixed instruction prompt
// and, for the receipt flow, an inline image sent as a base64 data URL.
type ChatInput struct {
	Model      string
	Prompt     string
	ImageBytes []byte // optional; when set, ImageMIME must be set too
	ImageMIME  string
}

// ChatOutput contains the first candidate's text plus the verbatim provider
// response. Raw exists solely for the audit sink; the pipeline never reads it.
type ChatOutput struct {
	Text  string
	Raw   json.RawMessage
	Model string
}

// TranscribeInput carries the audio bytes for speech-to-text.
type TranscribeInput struct {
	FileBytes []byte
	Filename  string
	MIMEHint  string // best-effort container hint derived from the filename
}

// ModelInfo describes one model available at the provider.
type ModelInfo struct {
	ID        string    `json:"id"`
	OwnedBy   string    `json:"owned_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ModelGateway abstracts the generative-model provider. It is the single
// source of provider error translation: every failure it returns is a
// *gateway.ProviderError so callers can report provider trouble separately
// from validation failures.
type ModelGateway interface {
	Transcribe(ctx context.Context, input TranscribeInput) (string, error)
	Chat(ctx context.Context, input ChatInput) (*ChatOutput, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

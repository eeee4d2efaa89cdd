// Package openai implements port.ModelGateway against the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/oleynichenko/ai-tools-api/internal/config"
	"github.com/oleynichenko/ai-tools-api/internal/gateway"
	"github.com/oleynichenko/ai-tools-api/internal/port"
)

const defaultBackoff = 500 * time.Millisecond

// Gateway is the OpenAI-backed model gateway. Every call carries a bounded
// timeout, and transient provider failures are retried with exponential
// backoff up to maxRetries additional attempts. The gateway keeps no state
// between calls and never caches.
type Gateway struct {
	client          *openai.Client
	chatModel       string
	transcribeModel string
	timeout         time.Duration
	maxRetries      int
}

// NewGateway creates a Gateway from provider config.
func NewGateway(cfg *config.OpenAIConfig) *Gateway {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	transcribeModel := cfg.TranscribeModel
	if transcribeModel == "" {
		transcribeModel = openai.Whisper1
	}

	return &Gateway{
		client:          openai.NewClientWithConfig(clientCfg),
		chatModel:       chatModel,
		transcribeModel: transcribeModel,
		timeout:         timeout,
		maxRetries:      cfg.MaxRetries,
	}
}

// DefaultChatModel returns the model used when ChatInput.Model is empty.
func (g *Gateway) DefaultChatModel() string {
	return g.chatModel
}

func (g *Gateway) Chat(ctx context.Context, input port.ChatInput) (*port.ChatOutput, error) {
	model := input.Model
	if model == "" {
		model = g.chatModel
	}

	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(input.ImageBytes) > 0 {
		dataURL := fmt.Sprintf("data:%s;base64,%s",
			input.ImageMIME, base64.StdEncoding.EncodeToString(input.ImageBytes))
		msg.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: input.Prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
		}
	} else {
		msg.Content = input.Prompt
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: []openai.ChatCompletionMessage{msg},
	}

	var resp openai.ChatCompletionResponse
	err := g.withRetry(ctx, "chat", func(callCtx context.Context) error {
		var callErr error
		resp, callErr = g.client.CreateChatCompletion(callCtx, req)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, &gateway.ProviderError{Op: "chat", Err: errors.New("empty response: no choices")}
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, &gateway.ProviderError{Op: "chat", Err: fmt.Errorf("marshaling response: %w", err)}
	}

	return &port.ChatOutput{
		Text:  resp.Choices[0].Message.Content,
		Raw:   raw,
		Model: model,
	}, nil
}

func (g *Gateway) Transcribe(ctx context.Context, input port.TranscribeInput) (string, error) {
	req := openai.AudioRequest{
		Model:    g.transcribeModel,
		FilePath: uploadFilename(input.Filename, input.MIMEHint),
		Reader:   bytes.NewReader(input.FileBytes),
		Format:   openai.AudioResponseFormatText,
	}

	var resp openai.AudioResponse
	err := g.withRetry(ctx, "transcribe", func(callCtx context.Context) error {
		var callErr error
		resp, callErr = g.client.CreateTranscription(callCtx, req)
		return callErr
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (g *Gateway) ListModels(ctx context.Context) ([]port.ModelInfo, error) {
	var list openai.ModelsList
	err := g.withRetry(ctx, "models", func(callCtx context.Context) error {
		var callErr error
		list, callErr = g.client.ListModels(callCtx)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	models := make([]port.ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, port.ModelInfo{
			ID:        m.ID,
			OwnedBy:   m.OwnedBy,
			CreatedAt: time.Unix(m.CreatedAt, 0).UTC(),
		})
	}
	return models, nil
}

// withRetry runs fn under the per-call timeout, retrying transient provider
// failures with doubling backoff. Deterministic failures (4xx other than 429)
// and parent-context cancellation stop immediately.
func (g *Gateway) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	backoff := defaultBackoff
	for attempt := 0; ; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		err := fn(callCtx)
		cancel()
		if err == nil {
			return nil
		}

		perr := translate(op, err)
		if !perr.Retryable() || attempt >= g.maxRetries || ctx.Err() != nil {
			return perr
		}

		log.Printf("openai.Gateway: %s attempt %d failed, retrying in %s: %v", op, attempt+1, backoff, err)
		select {
		case <-ctx.Done():
			return perr
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// translate converts go-openai errors into the gateway error contract.
func translate(op string, err error) *gateway.ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &gateway.ProviderError{Op: op, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &gateway.ProviderError{Op: op, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	// Transport failure or timeout: no HTTP status.
	return &gateway.ProviderError{Op: op, Err: err}
}

// uploadFilename keeps the caller's filename when its extension is usable and
// otherwise derives one from the MIME hint, so the provider always sees a
// recognizable container type.
func uploadFilename(name, mimeHint string) string {
	if filepath.Ext(name) != "" {
		return name
	}
	ext := ".mp3"
	switch mimeHint {
	case "audio/wav":
		ext = ".wav"
	case "audio/flac":
		ext = ".flac"
	case "audio/mp4":
		ext = ".m4a"
	case "audio/ogg":
		ext = ".ogg"
	case "audio/webm":
		ext = ".webm"
	case "audio/aac":
		ext = ".aac"
	case "audio/x-ms-wma":
		ext = ".wma"
	}
	return "clip" + ext
}

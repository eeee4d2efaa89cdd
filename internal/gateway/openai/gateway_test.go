package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleynichenko/ai-tools-api/internal/config"
	"github.com/oleynichenko/ai-tools-api/internal/gateway"
	openaigw "github.com/oleynichenko/ai-tools-api/internal/gateway/openai"
	"github.com/oleynichenko/ai-tools-api/internal/port"
)

func newTestGateway(t *testing.T, handler http.Handler) *openaigw.Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return openaigw.NewGateway(&config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     srv.URL + "/v1",
		TimeoutSecs: 5,
		MaxRetries:  2,
	})
}

func chatCompletionBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]interface{}{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestGateway_Chat_Success(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionBody(`{"ok":true}`))
	}))

	out, err := gw.Chat(context.Background(), port.ChatInput{Prompt: "extract"})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out.Text)
	assert.NotEmpty(t, out.Raw)
}

func TestGateway_Chat_SendsImageAsDataURL(t *testing.T) {
	var gotBody map[string]interface{}
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionBody("{}"))
	}))

	_, err := gw.Chat(context.Background(), port.ChatInput{
		Prompt:     "extract",
		ImageBytes: []byte{0x89, 0x50, 0x4e, 0x47},
		ImageMIME:  "image/png",
	})
	require.NoError(t, err)

	msgs := gotBody["messages"].([]interface{})
	require.Len(t, msgs, 1)
	parts := msgs[0].(map[string]interface{})["content"].([]interface{})
	require.Len(t, parts, 2)

	imgPart := parts[1].(map[string]interface{})
	assert.Equal(t, "image_url", imgPart["type"])
	url := imgPart["image_url"].(map[string]interface{})["url"].(string)
	assert.Contains(t, url, "data:image/png;base64,")
}

func TestGateway_Chat_RetriesOn429ThenSucceeds(t *testing.T) {
	var calls int32
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionBody(`{"ok":true}`))
	}))

	out, err := gw.Chat(context.Background(), port.ChatInput{Prompt: "extract"})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out.Text)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGateway_Chat_DoesNotRetryOn400(t *testing.T) {
	var calls int32
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad request","type":"invalid_request_error"}}`))
	}))

	_, err := gw.Chat(context.Background(), port.ChatInput{Prompt: "extract"})
	require.Error(t, err)

	var provErr *gateway.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
	assert.False(t, provErr.Retryable())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGateway_Chat_ExhaustsRetriesOn500(t *testing.T) {
	var calls int32
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"server error","type":"server_error"}}`))
	}))

	_, err := gw.Chat(context.Background(), port.ChatInput{Prompt: "extract"})
	require.Error(t, err)

	var provErr *gateway.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.True(t, provErr.Retryable())
	// initial attempt plus MaxRetries
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGateway_Transcribe_Success(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "clip.wav", header.Filename)

		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("We missed the deadline again."))
	}))

	text, err := gw.Transcribe(context.Background(), port.TranscribeInput{
		FileBytes: []byte("fake-audio"),
		Filename:  "", // no filename from the client; extension comes from the hint
		MIMEHint:  "audio/wav",
	})
	require.NoError(t, err)
	assert.Equal(t, "We missed the deadline again.", text)
}

func TestGateway_Transcribe_KeepsCallerFilename(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "standup.mp3", header.Filename)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}))

	_, err := gw.Transcribe(context.Background(), port.TranscribeInput{
		FileBytes: []byte("fake-audio"),
		Filename:  "standup.mp3",
		MIMEHint:  "audio/mpeg",
	})
	require.NoError(t, err)
}

func TestGateway_ListModels(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"id":"gpt-4o-mini","object":"model","owned_by":"openai","created":1715367049},
			{"id":"whisper-1","object":"model","owned_by":"openai-internal","created":1677532384}
		]}`))
	}))

	models, err := gw.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "gpt-4o-mini", models[0].ID)
	assert.Equal(t, "openai", models[0].OwnedBy)
	assert.Equal(t, int64(1715367049), models[0].CreatedAt.Unix())
}

func TestGateway_Chat_EmptyChoices(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","model":"gpt-4o-mini","choices":[]}`))
	}))

	_, err := gw.Chat(context.Background(), port.ChatInput{Prompt: "extract"})
	var provErr *gateway.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Error(), "no choices")
}

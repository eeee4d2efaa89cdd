package service

import (
	"context"
	"log"
	"strings"

	"github.com/oleynichenko/ai-tools-api/internal/audit"
	"github.com/oleynichenko/ai-tools-api/internal/domain"
	"github.com/oleynichenko/ai-tools-api/internal/format"
	"github.com/oleynichenko/ai-tools-api/internal/port"
	"github.com/oleynichenko/ai-tools-api/internal/recovery"
	"github.com/oleynichenko/ai-tools-api/internal/validate"
)

// AnalyseAudioInput is the DTO for audio analysis requests.
type AnalyseAudioInput struct {
	FileBytes []byte
	MIMEType  string
	Filename  string
}

// AudioService defines the audio transcription + classification contract.
type AudioService interface {
	AnalyseAudio(ctx context.Context, input AnalyseAudioInput) (*domain.AudioAnalysis, error)
}

type audioService struct {
	gateway port.ModelGateway
	sink    *audit.Sink
}

// NewAudioService creates an AudioService implementation.
func NewAudioService(gw port.ModelGateway, sink *audit.Sink) AudioService {
	return &audioService{gateway: gw, sink: sink}
}

// AnalyseAudio runs the audio pipeline. Transcription strictly precedes
// classification: the second call's prompt is built from the first call's
// output. A transcript that is empty after trimming is a terminal failure,
// never passed downstream.
func (s *audioService) AnalyseAudio(ctx context.Context, input AnalyseAudioInput) (*domain.AudioAnalysis, error) {
	if err := format.ValidateAudio(input.MIMEType, int64(len(input.FileBytes))); err != nil {
		return nil, err
	}

	log.Printf("audioService.AnalyseAudio: transcribing %s (%s, %d bytes)",
		input.Filename, input.MIMEType, len(input.FileBytes))

	text, err := s.gateway.Transcribe(ctx, port.TranscribeInput{
		FileBytes: input.FileBytes,
		Filename:  input.Filename,
		MIMEHint:  format.AudioMIMEForFilename(input.Filename),
	})
	if err != nil {
		return nil, err
	}

	transcription := strings.TrimSpace(text)
	if transcription == "" {
		return nil, domain.ErrEmptyTranscription
	}
	log.Printf("audioService.AnalyseAudio: transcription completed (%d chars)", len(transcription))

	classification, err := s.classify(ctx, transcription)
	if err != nil {
		return nil, err
	}

	return &domain.AudioAnalysis{
		Transcription: transcription,
		Topic:         classification.Topic,
		Emotion:       classification.Emotion,
		Tags:          classification.Tags,
	}, nil
}

// classify issues the classification chat call and validates its output. The
// model legitimately answers with plain prose for non-meeting content; that
// surfaces as a normal recovery/validation rejection, not a crash.
func (s *audioService) classify(ctx context.Context, transcription string) (*domain.AudioClassification, error) {
	out, err := s.gateway.Chat(ctx, port.ChatInput{
		Prompt: classificationPrompt(transcription),
	})
	if err != nil {
		return nil, err
	}

	s.sink.Record("audio", out.Raw)

	obj, err := recovery.Recover(out.Text)
	if err != nil {
		return nil, err
	}

	return validate.AudioClassification(obj)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oleynichenko/ai-tools-api/internal/domain"
	"github.com/oleynichenko/ai-tools-api/internal/service"
)

// MockAudioService is a mock implementation of service.AudioService.
type MockAudioService struct {
	mock.Mock
}

func (m *MockAudioService) AnalyseAudio(ctx context.Context, input service.AnalyseAudioInput) (*domain.AudioAnalysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AudioAnalysis), args.Error(1)
}

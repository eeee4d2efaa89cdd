package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oleynichenko/ai-tools-api/internal/port"
)

// MockModelGateway is a mock implementation of port.ModelGateway.
type MockModelGateway struct {
	mock.Mock
}

func (m *MockModelGateway) Chat(ctx context.Context, input port.ChatInput) (*port.ChatOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ChatOutput), args.Error(1)
}

func (m *MockModelGateway) Transcribe(ctx context.Context, input port.TranscribeInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockModelGateway) ListModels(ctx context.Context) ([]port.ModelInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.ModelInfo), args.Error(1)
}

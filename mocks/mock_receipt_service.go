package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oleynichenko/ai-tools-api/internal/domain"
	"github.com/oleynichenko/ai-tools-api/internal/service"
)

// MockReceiptService is a mock implementation of service.ReceiptService.
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) ParseReceipt(ctx context.Context, input service.ParseReceiptInput) (*domain.ReceiptRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptRecord), args.Error(1)
}

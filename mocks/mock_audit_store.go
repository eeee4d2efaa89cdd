package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAuditStore is a mock implementation of port.AuditStore.
type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Put(ctx context.Context, key string, body []byte) error {
	args := m.Called(ctx, key, body)
	return args.Error(0)
}

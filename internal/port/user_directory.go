package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/oleynichenko/ai-tools-api/internal/domain"
)

// UserDirectory is the external user store behind the auth endpoints.
// The shipped implementation is in-memory; nothing in the extraction
// pipeline depends on it.
type UserDirectory interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Create(ctx context.Context, name, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

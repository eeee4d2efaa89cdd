// Package directory provides the in-memory user store behind the auth
// endpoints. It is process-local by design: nothing here survives a restart,
// and nothing in the extraction pipeline reads it.
package directory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/oleynichenko/ai-tools-api/internal/domain"
)

// MemoryDirectory is a mutex-guarded, bcrypt-backed port.UserDirectory.
type MemoryDirectory struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

// NewMemoryDirectory creates an empty directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

// NewDemoDirectory creates a directory seeded with two demo accounts.
func NewDemoDirectory() (*MemoryDirectory, error) {
	d := NewMemoryDirectory()
	seed := []struct{ name, email, password string }{
		{"John Doe", "john@example.com", "password123"},
		{"Jane Smith", "jane@example.com", "password456"},
	}
	for _, s := range seed {
		if _, err := d.Create(context.Background(), s.name, s.email, s.password); err != nil {
			return nil, fmt.Errorf("seeding demo user %s: %w", s.email, err)
		}
	}
	return d, nil
}

func (d *MemoryDirectory) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	d.mu.RLock()
	user, ok := d.byEmail[email]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	copied := *user
	return &copied, nil
}

func (d *MemoryDirectory) Create(_ context.Context, name, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[email]; exists {
		return nil, domain.ErrDuplicateEmail
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	d.byID[user.ID] = user
	d.byEmail[email] = user

	copied := *user
	return &copied, nil
}

func (d *MemoryDirectory) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore writes audit files under a local directory, one file per response.
type FSStore struct {
	dir string
}

// NewFSStore creates a local-directory AuditStore rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

func (s *FSStore) Put(_ context.Context, key string, body []byte) error {
	p := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating audit dir: %w", err)
	}
	if err := os.WriteFile(p, body, 0o644); err != nil {
		return fmt.Errorf("writing audit file: %w", err)
	}
	return nil
}

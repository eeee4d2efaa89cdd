package port

import "context"

// AuditStore abstracts the durable storage behind the audit sink. Keys are
// slash-separated paths namespaced by extraction domain.
type AuditStore interface {
	Put(ctx context.Context, key string, body []byte) error
}

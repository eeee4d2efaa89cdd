// Package audit persists raw provider responses for offline debugging.
// Writes are best-effort and fire-and-forget: a failure here is observable
// only in logs and never reaches the caller of the extraction pipeline.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oleynichenko/ai-tools-api/internal/port"
)

const writeTimeout = 10 * time.Second

type entry struct {
	domain string
	raw    json.RawMessage
	at     time.Time
}

// Sink queues raw responses onto a buffered channel consumed by a single
// writer goroutine, so the pipeline never blocks on storage latency. When the
// queue is full the entry is dropped with a log line rather than stalling a
// request.
type Sink struct {
	store     port.AuditStore
	ch        chan entry
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewSink creates a Sink and starts its writer goroutine.
func NewSink(store port.AuditStore, queueSize int) *Sink {
	if queueSize <= 0 {
		queueSize = 64
	}
	s := &Sink{
		store: store,
		ch:    make(chan entry, queueSize),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Record enqueues a raw provider response for persistence under the given
// extraction domain ("receipt" or "audio"). It never blocks and never fails
// from the caller's perspective.
func (s *Sink) Record(domain string, raw json.RawMessage) {
	e := entry{domain: domain, raw: raw, at: time.Now().UTC()}
	select {
	case s.ch <- e:
	default:
		log.Printf("audit.Sink: queue full, dropping %s response", domain)
	}
}

// Close stops accepting entries and blocks until queued writes have drained.
func (s *Sink) Close() {
	s.closeOnce.Do(func() { close(s.ch) })
	s.wg.Wait()
}

func (s *Sink) run() {
	defer s.wg.Done()
	for e := range s.ch {
		key := auditKey(e.domain, e.at)

		// Audit writes use their own context: an aborted request must not
		// cancel a write already issued.
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := s.store.Put(ctx, key, indent(e.raw))
		cancel()

		if err != nil {
			log.Printf("audit.Sink: failed to save %s response to %s: %v", e.domain, key, err)
			continue
		}
		log.Printf("audit.Sink: response saved to %s", key)
	}
}

// auditKey builds a storage key namespaced by domain. The timestamp alone can
// collide under concurrent load, so a random suffix disambiguates.
func auditKey(domain string, at time.Time) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(at.Format("2006-01-02T15:04:05.000Z07:00"))
	suffix := uuid.NewString()[:8]
	return path.Join(domain, fmt.Sprintf("openai-response-%s-%s-%s.json", domain, ts, suffix))
}

func indent(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return raw
	}
	return buf.Bytes()
}

package sink

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chatmux/domain/event"
	"chatmux/repositories"

	"github.com/google/uuid"
)

// AuditSink persists link changes and moderation outcomes. Relayed
// message bodies are deliberately not written anywhere.
//
// Records are buffered and flushed either when the buffer reaches
// maxBufferedRecords or when bufferTimeout elapses, whichever happens
// first, so a burst of cascades does not turn into a burst of disk
// transactions.
type AuditSink struct {
	mu                 sync.Mutex
	timer              *time.Timer
	repository         repositories.IAuditRepository
	log                *slog.Logger
	records            []repositories.AuditRecord
	maxBufferedRecords int
	bufferTimeout      time.Duration
}

func NewAuditSink(repository repositories.IAuditRepository, log *slog.Logger,
	maxBufferedRecords int, bufferTimeout time.Duration) *AuditSink {
	return &AuditSink{
		repository:         repository,
		log:                log,
		maxBufferedRecords: maxBufferedRecords,
		bufferTimeout:      bufferTimeout,
	}
}

func (s *AuditSink) Consume(_ context.Context, e event.DomainEvent) error {
	record, ok := toAuditRecord(e)
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.records = append(s.records, record)

	// The first record of a new batch arms a deadline so low-traffic
	// periods still reach disk promptly.
	if len(s.records) == 1 && s.timer == nil {
		s.timer = time.AfterFunc(s.bufferTimeout, func() {
			if err := s.Flush(); err != nil {
				s.log.Error("Batching: timeout flush failed", "error", err)
			}
		})
	}
	isFull := len(s.records) >= s.maxBufferedRecords
	s.mu.Unlock()

	if isFull {
		return s.Flush()
	}
	return nil
}

// Flush writes the buffered records. It swaps the buffer out under the
// lock so consumption resumes immediately while the batch is written.
func (s *AuditSink) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if len(s.records) == 0 {
		s.mu.Unlock()
		return nil
	}
	batch := s.records
	s.records = make([]repositories.AuditRecord, 0, s.maxBufferedRecords)
	s.mu.Unlock()

	if err := s.repository.StoreBatch(batch); err != nil {
		return fmt.Errorf("failed to store audit batch: %w", err)
	}
	s.log.Debug("Audit batch stored", "count", len(batch))
	return nil
}

func toAuditRecord(e event.DomainEvent) (repositories.AuditRecord, bool) {
	switch evt := e.(type) {
	case event.LinkAdded:
		return repositories.AuditRecord{
			ID:     uuid.New(),
			Kind:   "link-added",
			Detail: evt.Link.String(),
			At:     evt.At,
		}, true
	case event.LinkRemoved:
		return repositories.AuditRecord{
			ID:     uuid.New(),
			Kind:   "link-removed",
			Detail: evt.Link.String(),
			At:     evt.At,
		}, true
	case event.ModerationResolved:
		kind := "moderation-timeout"
		if evt.Deleted {
			kind = "moderation-deleted"
		}
		return repositories.AuditRecord{
			ID:     uuid.New(),
			Kind:   kind,
			Detail: fmt.Sprintf("%s message %s", evt.Target, evt.RelayedID),
			At:     evt.At,
		}, true
	case event.CascadeDeleted:
		return repositories.AuditRecord{
			ID:     uuid.New(),
			Kind:   "cascade-deleted",
			Detail: fmt.Sprintf("%s origin %s removed %d copies", evt.From, evt.OriginID, evt.Copies),
			At:     evt.At,
		}, true
	default:
		return repositories.AuditRecord{}, false
	}
}

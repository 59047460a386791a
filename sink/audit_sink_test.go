package sink

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"chatmux/domain"
	"chatmux/domain/event"
	"chatmux/repositories"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fakeAuditRepository struct {
	mu      sync.Mutex
	batches [][]repositories.AuditRecord
	fail    error
}

func (f *fakeAuditRepository) StoreAudit(record repositories.AuditRecord) error {
	return f.StoreBatch([]repositories.AuditRecord{record})
}

func (f *fakeAuditRepository) StoreBatch(records []repositories.AuditRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.batches = append(f.batches, records)
	return nil
}

func (f *fakeAuditRepository) RecentAudits(limit int) ([]repositories.AuditRecord, error) {
	return nil, nil
}

func (f *fakeAuditRepository) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func linkAdded() event.DomainEvent {
	return event.LinkAdded{
		Link: domain.ChannelLink{
			From: domain.ChannelRef{Service: "alpha", ChannelID: "general"},
			To:   domain.ChannelRef{Service: "beta", ChannelID: "town-square"},
		},
		At: time.Now(),
	}
}

func TestAuditSinkFlushesWhenBufferIsFull(t *testing.T) {
	req := require.New(t)
	repo := &fakeAuditRepository{}
	auditSink := NewAuditSink(repo, logs.GetLoggerFromString("error"), 3, time.Minute)
	ctx := context.Background()

	req.NoError(auditSink.Consume(ctx, linkAdded()))
	req.NoError(auditSink.Consume(ctx, linkAdded()))
	req.Equal(0, repo.stored())

	req.NoError(auditSink.Consume(ctx, linkAdded()))
	req.Equal(3, repo.stored())
}

func TestAuditSinkFlushesOnTimeout(t *testing.T) {
	req := require.New(t)
	repo := &fakeAuditRepository{}
	auditSink := NewAuditSink(repo, logs.GetLoggerFromString("error"), 100, 20*time.Millisecond)

	req.NoError(auditSink.Consume(context.Background(), linkAdded()))
	req.Equal(0, repo.stored())

	req.Eventually(func() bool { return repo.stored() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestAuditSinkIgnoresRelayTraffic(t *testing.T) {
	req := require.New(t)
	repo := &fakeAuditRepository{}
	auditSink := NewAuditSink(repo, logs.GetLoggerFromString("error"), 1, time.Minute)

	relayed := event.MessageRelayed{
		OriginID: uuid.New(),
		From:     domain.ChannelRef{Service: "alpha", ChannelID: "general"},
		Target:   domain.ChannelRef{Service: "beta", ChannelID: "town-square"},
		Content:  "must never reach disk",
		At:       time.Now(),
	}
	req.NoError(auditSink.Consume(context.Background(), relayed))
	req.NoError(auditSink.Flush())
	req.Equal(0, repo.stored())
}

func TestAuditSinkFlushEmptiesBuffer(t *testing.T) {
	req := require.New(t)
	repo := &fakeAuditRepository{}
	auditSink := NewAuditSink(repo, logs.GetLoggerFromString("error"), 100, time.Minute)

	req.NoError(auditSink.Consume(context.Background(), linkAdded()))
	req.NoError(auditSink.Flush())
	req.Equal(1, repo.stored())

	// Nothing buffered; a second flush writes nothing.
	req.NoError(auditSink.Flush())
	req.Len(repo.batches, 1)
}

func TestAuditSinkFlushReportsRepositoryFailure(t *testing.T) {
	req := require.New(t)
	repo := &fakeAuditRepository{fail: fmt.Errorf("disk full")}
	auditSink := NewAuditSink(repo, logs.GetLoggerFromString("error"), 100, time.Minute)

	req.NoError(auditSink.Consume(context.Background(), linkAdded()))
	req.Error(auditSink.Flush())
}

package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsewell/invoice-tracker/internal/entity"
	"github.com/parsewell/invoice-tracker/internal/extract"
	"github.com/parsewell/invoice-tracker/internal/pipeline"
)

type stubTextExtractor struct{}

func (stubTextExtractor) Extract(_ context.Context, path string) (extract.TextResult, error) {
	return extract.TextResult{Text: "Bill To: " + path + "\nTotal: 1.00"}, nil
}

type countingRepo struct {
	mu       sync.Mutex
	inserted []string
}

func (c *countingRepo) Insert(_ context.Context, inv *entity.Invoice) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inserted = append(c.inserted, inv.SourcePath)
	return nil
}

func (c *countingRepo) GetByID(context.Context, uuid.UUID) (*entity.Invoice, error) {
	return nil, nil
}

func (c *countingRepo) List(context.Context, *time.Time, *time.Time) ([]*entity.Invoice, error) {
	return nil, nil
}

func newTestQueue(repo *countingRepo, opts ...Option) *ProcessorQueue {
	proc := pipeline.NewProcessor(stubTextExtractor{}, pipeline.NewParseStage(repo, nil), nil)
	return NewProcessorQueue(proc, nil, opts...)
}

func TestQueueProcessesJobsAndDrains(t *testing.T) {
	repo := &countingRepo{}
	q := newTestQueue(repo, WithWorkers(2), WithQueueSize(8))

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(context.Background(), Job{
			Path:        "/inbox/invoice.png",
			SubmittedAt: time.Now(),
		}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Len(t, repo.inserted, 5)
}

func TestQueueEnqueueAfterShutdown(t *testing.T) {
	repo := &countingRepo{}
	q := newTestQueue(repo, WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)
	q.Shutdown(ctx) // idempotent

	// Dropped, not panicking on a closed channel.
	assert.NoError(t, q.Enqueue(context.Background(), Job{Path: "/inbox/late.png"}))
}

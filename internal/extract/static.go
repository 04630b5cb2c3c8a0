package extract

import (
	"context"
	"sync"

	"invoiceflow/internal/domain"
)

// Static is the in-memory Extractor double. It replays queued extractions
// in order and returns an empty extraction once the queue is drained,
// which mirrors a model call that found nothing.
type Static struct {
	mu    sync.Mutex
	queue []domain.Extraction
}

// NewStatic creates a Static extractor preloaded with results.
func NewStatic(results ...domain.Extraction) *Static {
	return &Static{queue: results}
}

// Enqueue appends another extraction to replay.
func (s *Static) Enqueue(e domain.Extraction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, e)
}

func (s *Static) Extract(_ context.Context, _ string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return Result{}
	}
	head := s.queue[0]
	s.queue = s.queue[1:]
	return Result{Fields: head}
}

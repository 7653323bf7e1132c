package memory

import (
	"context"
	"sync"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// ActivityRepository keeps the audit feed in memory, newest last.
type ActivityRepository struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Insert(_ context.Context, event *domain.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, *event)
	return nil
}

// ListByActor returns the actor's most recent events, newest first.
func (r *ActivityRepository) ListByActor(_ context.Context, actorID string, limit int64) ([]*domain.ActivityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.ActivityEvent, 0)
	for i := len(r.events) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.events[i].ActorID == actorID {
			clone := r.events[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

package ports

import (
	"context"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// ActivityRepository persists the audit feed of todo operations.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	// ListByActor returns the actor's most recent events, newest first.
	ListByActor(ctx context.Context, actorID string, limit int64) ([]*domain.ActivityEvent, error)
}

// ActivityService records and serves the activity feed.
type ActivityService interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
	Feed(ctx context.Context, actorID string, limit int64) ([]*domain.ActivityEvent, error)
}

// ActivityPublisher is the write side seen by TodoService: a non-blocking
// hand-off into the dispatcher's worker queues.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

const defaultFeedLimit = 50

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService backed by repo.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single audit event. Called from the dispatcher workers.
func (s *activityService) Record(ctx context.Context, event domain.ActivityEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("todo_id", event.TodoID).
		Str("actor_id", event.ActorID).
		Str("action", string(event.Action)).
		Msg("activity recorded")
	return nil
}

// Feed returns the actor's most recent events, newest first.
func (s *activityService) Feed(ctx context.Context, actorID string, limit int64) ([]*domain.ActivityEvent, error) {
	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}
	events, err := s.repo.ListByActor(ctx, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("activity feed: %w", err)
	}
	return events, nil
}

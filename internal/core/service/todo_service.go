package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

// TodoService is the use-case facade: it stamps ownership, enforces the
// access policy, and delegates persistence to the repository.
type TodoService struct {
	repo     ports.TodoRepository
	activity ports.ActivityPublisher // optional; nil disables the audit feed
	logger   zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, activity ports.ActivityPublisher, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, activity: activity, logger: logger}
}

// Create stores a new todo owned by callerID. Missing collections default to
// empty so responses always carry `tags` and `shared_with` as arrays.
func (s *TodoService) Create(ctx context.Context, input ports.CreateTodoInput, callerID string) (*domain.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	todo := &domain.Todo{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Completed:   false,
		OwnerID:     callerID,
		Tags:        tags,
		Deadline:    input.Deadline,
		SharedWith:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		s.logger.Error().Err(err).Str("user_id", callerID).Msg("failed to create todo")
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.logger.Info().Str("todo_id", todo.ID).Str("user_id", callerID).Msg("todo created")
	s.publish(todo.ID, callerID, domain.ActivityCreated, "")
	return todo, nil
}

// List returns the todos matching input, restricted to records the caller
// owns or is shared on. The caller id is always injected into the filter;
// nothing the caller supplies can widen the scope.
func (s *TodoService) List(ctx context.Context, input ports.ListTodosInput, callerID string) ([]*domain.Todo, error) {
	filter := ports.TodoFilter{
		UserID:         callerID,
		Search:         input.Search,
		Tags:           input.Tags,
		Completed:      input.Completed,
		DeadlineBefore: input.DeadlineBefore,
	}

	todos, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", callerID).Msg("failed to list todos")
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Update applies a partial merge to an existing todo. Shared users may edit;
// id and owner never change.
func (s *TodoService) Update(ctx context.Context, id string, fields ports.UpdateTodoFields, callerID string) (*domain.Todo, error) {
	if _, err := s.authorize(ctx, id, callerID, domain.ModeWrite); err != nil {
		return nil, err
	}

	todo, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error().Err(err).Str("todo_id", id).Str("user_id", callerID).Msg("failed to update todo")
		return nil, fmt.Errorf("update todo %s: %w", id, err)
	}

	s.logger.Info().Str("todo_id", id).Str("user_id", callerID).Msg("todo updated")
	s.publish(id, callerID, domain.ActivityUpdated, "")
	return todo, nil
}

// Share grants the given users read/write access. Owner only. Re-sharing is
// idempotent: shared_with stays a set.
func (s *TodoService) Share(ctx context.Context, id string, userIDs []string, callerID string) (*domain.Todo, error) {
	if _, err := s.authorize(ctx, id, callerID, domain.ModeShare); err != nil {
		return nil, err
	}

	todo, err := s.repo.Share(ctx, id, userIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("todo_id", id).Str("user_id", callerID).Msg("failed to share todo")
		return nil, fmt.Errorf("share todo %s: %w", id, err)
	}

	s.logger.Info().Str("todo_id", id).Str("user_id", callerID).Strs("shared_with", userIDs).Msg("todo shared")
	s.publish(id, callerID, domain.ActivityShared, strings.Join(userIDs, ","))
	return todo, nil
}

// Delete removes a todo. Owner only.
func (s *TodoService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.authorize(ctx, id, callerID, domain.ModeDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("todo_id", id).Str("user_id", callerID).Msg("failed to delete todo")
		return fmt.Errorf("delete todo %s: %w", id, err)
	}

	s.logger.Info().Str("todo_id", id).Str("user_id", callerID).Msg("todo deleted")
	s.publish(id, callerID, domain.ActivityDeleted, "")
	return nil
}

// authorize loads the todo and checks the policy for mode. A caller without
// read visibility gets ErrTodoNotFound rather than ErrForbidden, so probing
// ids reveals nothing about records the caller cannot see.
func (s *TodoService) authorize(ctx context.Context, id, callerID string, mode domain.AccessMode) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !todo.CanAccess(callerID, domain.ModeRead) {
		return nil, domain.ErrTodoNotFound
	}
	if !todo.CanAccess(callerID, mode) {
		return nil, domain.ErrForbidden
	}
	return todo, nil
}

func (s *TodoService) publish(todoID, actorID string, action domain.ActivityAction, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Publish(domain.ActivityEvent{
		ID:        uuid.NewString(),
		TodoID:    todoID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

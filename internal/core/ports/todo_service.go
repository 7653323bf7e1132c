package ports

import (
	"context"
	"time"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// CreateTodoInput carries the caller-supplied fields for a new todo. The
// owner is always the authenticated caller, never part of the input.
type CreateTodoInput struct {
	Title       string
	Description string
	Tags        []string
	Deadline    *time.Time
}

// ListTodosInput carries the optional listing predicates. The caller identity
// is injected by the service so results never leave the caller's access scope.
type ListTodosInput struct {
	Search         string
	Tags           []string
	Completed      *bool
	DeadlineBefore *time.Time
}

// TodoService defines the use-case operations for todos. Every method takes
// the authenticated caller's id and enforces the access policy before
// touching the repository.
type TodoService interface {
	Create(ctx context.Context, input CreateTodoInput, callerID string) (*domain.Todo, error)
	List(ctx context.Context, input ListTodosInput, callerID string) ([]*domain.Todo, error)
	Update(ctx context.Context, id string, fields UpdateTodoFields, callerID string) (*domain.Todo, error)
	Share(ctx context.Context, id string, userIDs []string, callerID string) (*domain.Todo, error)
	Delete(ctx context.Context, id string, callerID string) error
}

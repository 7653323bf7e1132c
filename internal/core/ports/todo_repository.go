package ports

import (
	"context"
	"time"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// UpdateTodoFields is a partial update: nil fields are left unchanged.
// ID and OwnerID are not part of the patch and can never be modified.
type UpdateTodoFields struct {
	Title       *string
	Description *string
	Completed   *bool
	Tags        []string   // nil = unchanged; empty slice clears the tags
	Deadline    *time.Time // nil = unchanged
}

// TodoRepository defines persistence operations for todos. Implementations
// must apply Update and Share atomically per record and keep Find results in
// insertion order.
type TodoRepository interface {
	Create(ctx context.Context, t *domain.Todo) error
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	Find(ctx context.Context, filter TodoFilter) ([]*domain.Todo, error)
	// Update merges fields into the stored record and refreshes updated_at.
	Update(ctx context.Context, id string, fields UpdateTodoFields) (*domain.Todo, error)
	// Share adds userIDs to the shared_with set (union, owner excluded).
	Share(ctx context.Context, id string, userIDs []string) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
}

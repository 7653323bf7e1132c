// Package memory provides an in-process TodoRepository. It backs the
// "memory" storage driver and doubles as the repository used in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

// TodoRepository keeps todos in a mutex-guarded map. A separate order slice
// preserves insertion order for Find. All mutations on a given id are
// serialized by the single lock, so partial updates are never observable.
type TodoRepository struct {
	mu    sync.Mutex
	todos map[string]*domain.Todo
	order []string
}

func NewTodoRepository() *TodoRepository {
	return &TodoRepository{todos: make(map[string]*domain.Todo)}
}

func (r *TodoRepository) Create(_ context.Context, t *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneTodo(t)
	r.todos[t.ID] = clone
	r.order = append(r.order, t.ID)
	return nil
}

func (r *TodoRepository) FindByID(_ context.Context, id string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return cloneTodo(t), nil
}

func (r *TodoRepository) Find(_ context.Context, filter ports.TodoFilter) ([]*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*domain.Todo, 0)
	for _, id := range r.order {
		t := r.todos[id]
		if filter.Matches(t) {
			matched = append(matched, cloneTodo(t))
		}
	}
	return matched, nil
}

// Update merges the non-nil fields into the stored record. ID and OwnerID are
// not part of the patch and therefore cannot change.
func (r *TodoRepository) Update(_ context.Context, id string, fields ports.UpdateTodoFields) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}

	if fields.Title != nil {
		t.Title = *fields.Title
	}
	if fields.Description != nil {
		t.Description = *fields.Description
	}
	if fields.Completed != nil {
		t.Completed = *fields.Completed
	}
	if fields.Tags != nil {
		t.Tags = append([]string(nil), fields.Tags...)
	}
	if fields.Deadline != nil {
		t.Deadline = fields.Deadline
	}
	t.UpdatedAt = time.Now().UTC()

	return cloneTodo(t), nil
}

// Share unions userIDs into shared_with. The owner is never added; re-sharing
// the same ids is a no-op for membership.
func (r *TodoRepository) Share(_ context.Context, id string, userIDs []string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}

	for _, uid := range userIDs {
		if uid == "" || uid == t.OwnerID || t.SharedWithUser(uid) {
			continue
		}
		t.SharedWith = append(t.SharedWith, uid)
	}
	t.UpdatedAt = time.Now().UTC()

	return cloneTodo(t), nil
}

func (r *TodoRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// cloneTodo deep-copies a record so callers never alias internal state.
func cloneTodo(t *domain.Todo) *domain.Todo {
	clone := *t
	clone.Tags = make([]string, len(t.Tags))
	copy(clone.Tags, t.Tags)
	clone.SharedWith = make([]string, len(t.SharedWith))
	copy(clone.SharedWith, t.SharedWith)
	if t.Deadline != nil {
		d := *t.Deadline
		clone.Deadline = &d
	}
	return &clone
}

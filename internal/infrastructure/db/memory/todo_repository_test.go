package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

func seedTodo(t *testing.T, repo *TodoRepository, id, title, owner string) *domain.Todo {
	t.Helper()
	now := time.Now().UTC()
	todo := &domain.Todo{
		ID:         id,
		Title:      title,
		OwnerID:    owner,
		Tags:       []string{},
		SharedWith: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repo.Create(context.Background(), todo); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return todo
}

func TestTodoRepository_FindByID(t *testing.T) {
	repo := NewTodoRepository()
	seedTodo(t, repo, "t1", "task", "alice")

	got, err := repo.FindByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Title != "task" {
		t.Errorf("title: got %q", got.Title)
	}

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("got %v, want ErrTodoNotFound", err)
	}
}

func TestTodoRepository_FindPreservesInsertionOrder(t *testing.T) {
	repo := NewTodoRepository()
	seedTodo(t, repo, "t1", "first", "alice")
	seedTodo(t, repo, "t2", "second", "alice")
	seedTodo(t, repo, "t3", "third", "alice")

	todos, err := repo.Find(context.Background(), ports.TodoFilter{UserID: "alice"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	for i, want := range []string{"t1", "t2", "t3"} {
		if todos[i].ID != want {
			t.Fatalf("position %d: got %q, want %q", i, todos[i].ID, want)
		}
	}
}

func TestTodoRepository_UpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := NewTodoRepository()
	original := seedTodo(t, repo, "t1", "task", "alice")

	desc := "details"
	updated, err := repo.Update(context.Background(), "t1", ports.UpdateTodoFields{Description: &desc})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "task" {
		t.Errorf("unpatched title changed: %q", updated.Title)
	}
	if updated.Description != "details" {
		t.Errorf("description: got %q", updated.Description)
	}
	if updated.ID != original.ID || updated.OwnerID != original.OwnerID {
		t.Error("id and owner must be immutable")
	}
}

func TestTodoRepository_UpdateMissing(t *testing.T) {
	repo := NewTodoRepository()
	title := "x"
	_, err := repo.Update(context.Background(), "missing", ports.UpdateTodoFields{Title: &title})
	if !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("got %v, want ErrTodoNotFound", err)
	}
}

func TestTodoRepository_ShareUnion(t *testing.T) {
	repo := NewTodoRepository()
	seedTodo(t, repo, "t1", "task", "alice")

	if _, err := repo.Share(context.Background(), "t1", []string{"bob", "alice", ""}); err != nil {
		t.Fatal(err)
	}
	updated, err := repo.Share(context.Background(), "t1", []string{"bob", "carol"})
	if err != nil {
		t.Fatal(err)
	}

	if len(updated.SharedWith) != 2 {
		t.Fatalf("shared_with: got %v, want [bob carol]", updated.SharedWith)
	}
	if !updated.SharedWithUser("bob") || !updated.SharedWithUser("carol") {
		t.Fatalf("shared_with: got %v", updated.SharedWith)
	}
	if updated.SharedWithUser("alice") {
		t.Error("owner must never be added to shared_with")
	}
}

func TestTodoRepository_Delete(t *testing.T) {
	repo := NewTodoRepository()
	seedTodo(t, repo, "t1", "task", "alice")

	if err := repo.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "t1"); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatal("deleted todo must be gone")
	}
	if err := repo.Delete(context.Background(), "t1"); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("double delete: got %v, want ErrTodoNotFound", err)
	}
}

func TestTodoRepository_ClonesDoNotAliasStore(t *testing.T) {
	repo := NewTodoRepository()
	seedTodo(t, repo, "t1", "task", "alice")

	got, _ := repo.FindByID(context.Background(), "t1")
	got.Title = "mutated"
	got.Tags = append(got.Tags, "rogue")

	fresh, _ := repo.FindByID(context.Background(), "t1")
	if fresh.Title != "task" || len(fresh.Tags) != 0 {
		t.Error("mutating a returned todo must not affect the stored record")
	}
}

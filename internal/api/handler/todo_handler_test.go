package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

// stubTodoService implements ports.TodoService with function fields.
type stubTodoService struct {
	createFn func(ctx context.Context, input ports.CreateTodoInput, callerID string) (*domain.Todo, error)
	listFn   func(ctx context.Context, input ports.ListTodosInput, callerID string) ([]*domain.Todo, error)
	updateFn func(ctx context.Context, id string, fields ports.UpdateTodoFields, callerID string) (*domain.Todo, error)
	shareFn  func(ctx context.Context, id string, userIDs []string, callerID string) (*domain.Todo, error)
	deleteFn func(ctx context.Context, id string, callerID string) error
}

func (s *stubTodoService) Create(ctx context.Context, input ports.CreateTodoInput, callerID string) (*domain.Todo, error) {
	return s.createFn(ctx, input, callerID)
}

func (s *stubTodoService) List(ctx context.Context, input ports.ListTodosInput, callerID string) ([]*domain.Todo, error) {
	return s.listFn(ctx, input, callerID)
}

func (s *stubTodoService) Update(ctx context.Context, id string, fields ports.UpdateTodoFields, callerID string) (*domain.Todo, error) {
	return s.updateFn(ctx, id, fields, callerID)
}

func (s *stubTodoService) Share(ctx context.Context, id string, userIDs []string, callerID string) (*domain.Todo, error) {
	return s.shareFn(ctx, id, userIDs, callerID)
}

func (s *stubTodoService) Delete(ctx context.Context, id string, callerID string) error {
	return s.deleteFn(ctx, id, callerID)
}

func newTodoContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "alice")
	return c, rec
}

func TestTodoHandler_Create(t *testing.T) {
	svc := &stubTodoService{
		createFn: func(_ context.Context, input ports.CreateTodoInput, callerID string) (*domain.Todo, error) {
			if callerID != "alice" {
				t.Errorf("caller: got %q", callerID)
			}
			return &domain.Todo{ID: "t1", Title: input.Title, OwnerID: callerID}, nil
		},
	}
	h := NewTodoHandler(svc)

	c, rec := newTodoContext(t, http.MethodPost, "/v1/todos", `{"title":"Buy milk"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}

	var resp todoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Tags == nil || resp.SharedWith == nil {
		t.Error("tags and shared_with must serialize as arrays, never null")
	}
}

func TestTodoHandler_Create_MissingTitle(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{
		createFn: func(context.Context, ports.CreateTodoInput, string) (*domain.Todo, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	})

	c, _ := newTodoContext(t, http.MethodPost, "/v1/todos", `{"description":"no title"}`)
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400", err)
	}
}

func TestTodoHandler_Create_Unauthenticated(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{})

	c, _ := newTodoContext(t, http.MethodPost, "/v1/todos", `{"title":"x"}`)
	c.Set("user_id", nil)
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("got %v, want 401", err)
	}
}

func TestTodoHandler_List_QueryParsing(t *testing.T) {
	var got ports.ListTodosInput
	h := NewTodoHandler(&stubTodoService{
		listFn: func(_ context.Context, input ports.ListTodosInput, _ string) ([]*domain.Todo, error) {
			got = input
			return nil, nil
		},
	})

	target := "/v1/todos?search=milk&tags=home,%20errand&completed=false&deadline_before=2026-03-01T12:00:00Z"
	c, rec := newTodoContext(t, http.MethodGet, target, "")
	if err := h.List(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}

	if got.Search != "milk" {
		t.Errorf("search: got %q", got.Search)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "home" || got.Tags[1] != "errand" {
		t.Errorf("tags: got %v, want [home errand]", got.Tags)
	}
	if got.Completed == nil || *got.Completed {
		t.Errorf("completed: got %v, want false", got.Completed)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if got.DeadlineBefore == nil || !got.DeadlineBefore.Equal(want) {
		t.Errorf("deadline_before: got %v", got.DeadlineBefore)
	}
}

func TestTodoHandler_List_EmptyResultIsArray(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{
		listFn: func(context.Context, ports.ListTodosInput, string) ([]*domain.Todo, error) {
			return nil, nil
		},
	})

	c, rec := newTodoContext(t, http.MethodGet, "/v1/todos", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty list must serialize as [], got %s", rec.Body.String())
	}
}

func TestTodoHandler_List_BadQuery(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{
		listFn: func(context.Context, ports.ListTodosInput, string) ([]*domain.Todo, error) {
			t.Fatal("service must not be called on invalid query")
			return nil, nil
		},
	})

	for _, target := range []string{
		"/v1/todos?completed=maybe",
		"/v1/todos?deadline_before=tomorrow",
	} {
		c, _ := newTodoContext(t, http.MethodGet, target, "")
		err := h.List(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %v, want 400", target, err)
		}
	}
}

func TestTodoHandler_Update(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{
		updateFn: func(_ context.Context, id string, fields ports.UpdateTodoFields, callerID string) (*domain.Todo, error) {
			if id != "t1" || callerID != "alice" {
				t.Errorf("unexpected call: id=%q caller=%q", id, callerID)
			}
			if fields.Title == nil || *fields.Title != "renamed" {
				t.Errorf("title field: got %v", fields.Title)
			}
			if fields.Description != nil || fields.Completed != nil {
				t.Error("absent fields must stay nil")
			}
			return &domain.Todo{ID: id, Title: *fields.Title, OwnerID: callerID}, nil
		},
	})

	c, rec := newTodoContext(t, http.MethodPut, "/v1/todos/t1", `{"title":"renamed"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Update(c); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestTodoHandler_Share(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{
		shareFn: func(_ context.Context, id string, userIDs []string, callerID string) (*domain.Todo, error) {
			if len(userIDs) != 1 || userIDs[0] != "bob" {
				t.Errorf("user_ids: got %v", userIDs)
			}
			return &domain.Todo{ID: id, OwnerID: callerID, SharedWith: userIDs}, nil
		},
	})

	c, rec := newTodoContext(t, http.MethodPost, "/v1/todos/t1/share", `{"user_ids":["bob"]}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Share(c); err != nil {
		t.Fatalf("share failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestTodoHandler_Share_EmptyUserIDs(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{
		shareFn: func(context.Context, string, []string, string) (*domain.Todo, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	})

	c, _ := newTodoContext(t, http.MethodPost, "/v1/todos/t1/share", `{"user_ids":[]}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	err := h.Share(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400", err)
	}
}

func TestTodoHandler_Delete(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{
		deleteFn: func(_ context.Context, id, callerID string) error {
			if id != "t1" || callerID != "alice" {
				t.Errorf("unexpected call: id=%q caller=%q", id, callerID)
			}
			return nil
		},
	})

	c, rec := newTodoContext(t, http.MethodDelete, "/v1/todos/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rec.Code)
	}
}

func TestTodoHandler_Delete_ForbiddenPassesThrough(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{
		deleteFn: func(context.Context, string, string) error {
			return domain.ErrForbidden
		},
	})

	c, _ := newTodoContext(t, http.MethodDelete, "/v1/todos/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Delete(c); err != domain.ErrForbidden {
		t.Fatalf("domain errors must pass through, got %v", err)
	}
}

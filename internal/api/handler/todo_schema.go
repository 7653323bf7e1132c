package handler

import (
	"time"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createTodoRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Deadline    *time.Time `json:"deadline"`
}

// updateTodoRequest is a partial update: absent fields stay untouched.
// id and owner_id are not accepted; they can never change.
type updateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Tags        []string   `json:"tags"`
	Deadline    *time.Time `json:"deadline"`
}

type shareTodoRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.

type todoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	OwnerID     string     `json:"owner_id"`
	Tags        []string   `json:"tags"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	SharedWith  []string   `json:"shared_with"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toTodoResponse(t *domain.Todo) todoResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	shared := t.SharedWith
	if shared == nil {
		shared = []string{}
	}
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
		Tags:        tags,
		Deadline:    t.Deadline,
		SharedWith:  shared,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodoResponses(todos []*domain.Todo) []todoResponse {
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	return out
}

type activityEventResponse struct {
	ID        string    `json:"id"`
	TodoID    string    `json:"todo_id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

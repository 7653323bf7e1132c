package domain

import (
	"errors"
	"time"
)

var ErrTitleRequired = errors.New("title is required")
var ErrTodoNotFound = errors.New("todo not found")
var ErrForbidden = errors.New("access forbidden")

// AccessMode names the kind of operation a caller wants to perform on a todo.
type AccessMode string

const (
	ModeRead   AccessMode = "read"
	ModeWrite  AccessMode = "write"
	ModeShare  AccessMode = "share"
	ModeDelete AccessMode = "delete"
)

// Todo is the core aggregate root: a task owned by one user and optionally
// shared with others.
type Todo struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Completed   bool       `json:"completed" bson:"completed"`
	OwnerID     string     `json:"owner_id" bson:"owner_id"`
	Tags        []string   `json:"tags" bson:"tags"`
	Deadline    *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	SharedWith  []string   `json:"shared_with" bson:"shared_with"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// SharedWithUser reports whether userID appears in the shared_with set.
// Ownership is deliberately a separate check.
func (t *Todo) SharedWithUser(userID string) bool {
	for _, id := range t.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// CanAccess is the ownership and visibility policy: read and write are
// allowed for the owner and anyone in shared_with; share and delete are
// owner-only.
func (t *Todo) CanAccess(userID string, mode AccessMode) bool {
	switch mode {
	case ModeRead, ModeWrite:
		return t.OwnerID == userID || t.SharedWithUser(userID)
	case ModeShare, ModeDelete:
		return t.OwnerID == userID
	default:
		return false
	}
}

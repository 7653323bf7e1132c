package ports

import (
	"strings"
	"time"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// TodoFilter is a conjunction of optional predicates. A zero-value field means
// the predicate is inactive and matches everything. The service layer always
// sets UserID to the authenticated caller before the filter reaches a
// repository.
type TodoFilter struct {
	UserID         string     // owner or member of shared_with
	Search         string     // case-insensitive substring of title or description
	Tags           []string   // at least one tag in common (OR across tags)
	Completed      *bool      // exact match
	DeadlineBefore *time.Time // deadline set and <= cutoff
}

// Matches evaluates every active predicate against t. The in-memory
// repository filters with this directly; the Mongo repository compiles the
// same predicates into a query, so the two must stay in agreement.
func (f TodoFilter) Matches(t *domain.Todo) bool {
	if f.UserID != "" && t.OwnerID != f.UserID && !t.SharedWithUser(f.UserID) {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}

	if len(f.Tags) > 0 && !intersects(t.Tags, f.Tags) {
		return false
	}

	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}

	if f.DeadlineBefore != nil {
		if t.Deadline == nil || t.Deadline.After(*f.DeadlineBefore) {
			return false
		}
	}

	return true
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

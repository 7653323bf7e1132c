package domain

import "time"

// ActivityAction identifies the todo operation an activity event records.
type ActivityAction string

const (
	ActivityCreated ActivityAction = "created"
	ActivityUpdated ActivityAction = "updated"
	ActivityShared  ActivityAction = "shared"
	ActivityDeleted ActivityAction = "deleted"
)

// ActivityEvent is one entry in the per-user audit feed. Events for the same
// todo are recorded in the order the operations happened.
type ActivityEvent struct {
	ID        string         `json:"id"`
	TodoID    string         `json:"todo_id"`
	ActorID   string         `json:"actor_id"`
	Action    ActivityAction `json:"action"`
	Detail    string         `json:"detail,omitempty"` // e.g. user ids a share added
	Timestamp time.Time      `json:"timestamp"`
}

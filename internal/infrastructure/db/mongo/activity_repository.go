package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/todo-api/internal/core/domain"
)

const collectionActivity = "activity_events"

// ActivityRepository persists the audit feed of todo operations.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type activityDoc struct {
	ID        string    `bson:"_id"`
	TodoID    string    `bson:"todo_id"`
	ActorID   string    `bson:"actor_id"`
	Action    string    `bson:"action"`
	Detail    string    `bson:"detail,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDoc{
		ID:        event.ID,
		TodoID:    event.TodoID,
		ActorID:   event.ActorID,
		Action:    string(event.Action),
		Detail:    event.Detail,
		Timestamp: event.Timestamp.UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// ListByActor returns the actor's most recent events, newest first.
func (r *ActivityRepository) ListByActor(ctx context.Context, actorID string, limit int64) ([]*domain.ActivityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"actor_id": actorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := make([]*domain.ActivityEvent, 0)
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		events = append(events, &domain.ActivityEvent{
			ID:        doc.ID,
			TodoID:    doc.TodoID,
			ActorID:   doc.ActorID,
			Action:    domain.ActivityAction(doc.Action),
			Detail:    doc.Detail,
			Timestamp: doc.Timestamp,
		})
	}
	return events, cur.Err()
}

// EnsureIndexes creates the feed query index.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}

package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

const collectionTodos = "todos"

type TodoRepository struct {
	col *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{col: db.Collection(collectionTodos)}
}

// Create inserts a new todo document.
func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Todo
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Find compiles the filter predicates into a query. The predicates must stay
// in agreement with ports.TodoFilter.Matches, which the in-memory repository
// evaluates directly. Results come back in creation order.
func (r *TodoRepository) Find(ctx context.Context, filter ports.TodoFilter) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	conds := bson.A{}

	if filter.UserID != "" {
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"owner_id": filter.UserID},
			bson.M{"shared_with": filter.UserID},
		}})
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}})
	}
	if len(filter.Tags) > 0 {
		conds = append(conds, bson.M{"tags": bson.M{"$in": filter.Tags}})
	}
	if filter.Completed != nil {
		conds = append(conds, bson.M{"completed": *filter.Completed})
	}
	if filter.DeadlineBefore != nil {
		conds = append(conds, bson.M{"deadline": bson.M{
			"$ne":  nil,
			"$lte": filter.DeadlineBefore.UTC(),
		}})
	}

	query := bson.M{}
	if len(conds) > 0 {
		query["$and"] = conds
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	todos := make([]*domain.Todo, 0)
	for cur.Next(ctx) {
		var t domain.Todo
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		todos = append(todos, &t)
	}
	return todos, cur.Err()
}

// Update applies a partial merge in a single atomic $set. Only non-nil fields
// enter the update document, so omitted fields keep their stored values.
func (r *TodoRepository) Update(ctx context.Context, id string, fields ports.UpdateTodoFields) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Completed != nil {
		set["completed"] = *fields.Completed
	}
	if fields.Tags != nil {
		set["tags"] = fields.Tags
	}
	if fields.Deadline != nil {
		set["deadline"] = fields.Deadline.UTC()
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Todo
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Share unions userIDs into shared_with via $addToSet, which keeps the field
// a set under concurrent shares. The owner is filtered out up front; OwnerID
// is immutable so the pre-read cannot race with an ownership change.
func (r *TodoRepository) Share(ctx context.Context, id string, userIDs []string) (*domain.Todo, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	add := make([]string, 0, len(userIDs))
	for _, uid := range userIDs {
		if uid != "" && uid != existing.OwnerID {
			add = append(add, uid)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"shared_with": bson.M{"$each": add}},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Todo
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the list queries rely on.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "shared_with", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

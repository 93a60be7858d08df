package repo

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ModelRepo handles the persistence of maze model definitions.
type ModelRepo struct {
	collection *mongo.Collection
}

// NewModelRepo creates a new ModelRepo on the given database and collection.
func NewModelRepo(client *mongo.Client, dbName, collectionName string) *ModelRepo {
	return &ModelRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts or replaces a model.
func (r *ModelRepo) Save(ctx context.Context, model *dmn.Model) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": model.ID}, model, opts); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	return nil
}

// ByID retrieves a model by its ID.
func (r *ModelRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Model, error) {
	var model dmn.Model
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrNotFound
		}
		return nil, fmt.Errorf("loading model: %w", err)
	}
	return &model, nil
}

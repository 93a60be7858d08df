package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/google/uuid"
)

// BeliefTracker manages maze models and runs belief filtering against them.
// Every call is scoped to the owner passed as the first ID.
type BeliefTracker interface {
	// CreateModel validates and stores a new model.
	CreateModel(ctx context.Context, config dmn.ModelConfig) (*dmn.Model, error)

	// Model returns a stored model.
	Model(ctx context.Context, owner, id uuid.UUID) (*dmn.Model, error)

	// Filter runs one request against a model and stores the result.
	Filter(ctx context.Context, owner, modelID uuid.UUID, request dmn.FilterRequest) (*dmn.Run, error)

	// FilterBatch runs several requests against a model concurrently.
	FilterBatch(ctx context.Context, owner, modelID uuid.UUID, requests []dmn.FilterRequest) ([]*dmn.Run, error)

	// Run returns a stored run.
	Run(ctx context.Context, owner, id uuid.UUID) (*dmn.Run, error)
}

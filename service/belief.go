package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-belief/belief"
	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/beka-birhanu/vinom-belief/service/i"
	"github.com/google/uuid"
)

const (
	defaultWorkers = 4
	maxBatchSize   = 256
)

// ErrBatchTooLarge is returned when a batch holds more than maxBatchSize requests.
var ErrBatchTooLarge = fmt.Errorf("batch holds more than %d requests", maxBatchSize)

// builtModel is a built belief model with the owner of its record.
type builtModel struct {
	owner uuid.UUID
	model *belief.Model
}

// BeliefOptions configures a BeliefService.
type BeliefOptions struct {
	Models  i.ModelRepo
	Runs    i.RunRepo
	Cache   i.RunCache // optional
	Logger  i.Logger
	Workers int // concurrent sequences per batch
}

// BeliefService stores maze models and filters belief sequences against them.
// Built models are immutable and shared by every run on the same model.
type BeliefService struct {
	models   i.ModelRepo
	runs     i.RunRepo
	cache    i.RunCache
	logger   i.Logger
	workers  int
	compiled map[uuid.UUID]builtModel
	sync.RWMutex
}

// NewBeliefService creates a BeliefService with the given options.
func NewBeliefService(opts BeliefOptions) (*BeliefService, error) {
	if opts.Models == nil || opts.Runs == nil || opts.Logger == nil {
		return nil, errors.New("belief service requires model and run repositories and a logger")
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}

	return &BeliefService{
		models:   opts.Models,
		runs:     opts.Runs,
		cache:    opts.Cache,
		logger:   opts.Logger,
		workers:  opts.Workers,
		compiled: make(map[uuid.UUID]builtModel),
	}, nil
}

// CreateModel validates config and stores the resulting model.
func (s *BeliefService) CreateModel(ctx context.Context, config dmn.ModelConfig) (*dmn.Model, error) {
	record, err := dmn.NewModel(config)
	if err != nil {
		return nil, err
	}

	if err := s.models.Save(ctx, record); err != nil {
		s.logger.Error(fmt.Sprintf("Saving model %s: %v", record.ID, err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Model created: ID=%s Owner=%s Name=%q", record.ID, record.OwnerID, record.Name))
	return record, nil
}

// Model returns the stored model id if it belongs to owner.
func (s *BeliefService) Model(ctx context.Context, owner, id uuid.UUID) (*dmn.Model, error) {
	record, err := s.models.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != owner {
		return nil, dmn.ErrNotFound
	}
	return record, nil
}

// Filter runs request against the model, reusing a cached run for an identical request.
func (s *BeliefService) Filter(ctx context.Context, owner, modelID uuid.UUID, request dmn.FilterRequest) (*dmn.Run, error) {
	model, err := s.compiledModel(ctx, owner, modelID)
	if err != nil {
		return nil, err
	}

	cache := s.cache
	key, err := request.Digest(modelID)
	if err != nil {
		cache = nil
	}
	if cache != nil {
		unlock, err := cache.Lock(ctx, key)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("Locking run cache key %s: %v", key, err))
		} else {
			defer unlock()
		}

		cached, err := cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warning(fmt.Sprintf("Reading run cache key %s: %v", key, err))
		case cached != nil && cached.OwnerID == owner:
			s.logger.Info(fmt.Sprintf("Run cache hit: Model=%s Run=%s", modelID, cached.ID))
			return cached, nil
		}
	}

	seq := request.Sequence()
	snapshots, err := belief.Run(model, seq.Initial, seq.Actions, seq.Observations)
	if err != nil {
		return nil, err
	}

	run := dmn.NewRun(owner, modelID, request, snapshots)
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Error(fmt.Sprintf("Saving run %s: %v", run.ID, err))
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(ctx, key, run); err != nil {
			s.logger.Warning(fmt.Sprintf("Writing run cache key %s: %v", key, err))
		}
	}

	s.logger.Info(fmt.Sprintf("Run completed: Model=%s Run=%s Steps=%d", modelID, run.ID, len(request.Actions)))
	return run, nil
}

// FilterBatch runs every request against the model concurrently and stores the runs.
// Runs are returned in request order. A failing sequence fails the batch before any run is stored.
func (s *BeliefService) FilterBatch(ctx context.Context, owner, modelID uuid.UUID, requests []dmn.FilterRequest) ([]*dmn.Run, error) {
	if len(requests) > maxBatchSize {
		return nil, ErrBatchTooLarge
	}

	model, err := s.compiledModel(ctx, owner, modelID)
	if err != nil {
		return nil, err
	}

	seqs := make([]belief.Sequence, len(requests))
	for idx, r := range requests {
		seqs[idx] = r.Sequence()
	}

	results, err := belief.RunBatch(ctx, model, seqs, s.workers)
	if err != nil {
		return nil, err
	}

	runs := make([]*dmn.Run, len(requests))
	for idx, snapshots := range results {
		runs[idx] = dmn.NewRun(owner, modelID, requests[idx], snapshots)
		if err := s.runs.Save(ctx, runs[idx]); err != nil {
			s.logger.Error(fmt.Sprintf("Saving run %s: %v", runs[idx].ID, err))
			return nil, err
		}
	}

	s.logger.Info(fmt.Sprintf("Batch completed: Model=%s Runs=%d", modelID, len(runs)))
	return runs, nil
}

// Run returns the stored run id if it belongs to owner.
func (s *BeliefService) Run(ctx context.Context, owner, id uuid.UUID) (*dmn.Run, error) {
	run, err := s.runs.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.OwnerID != owner {
		return nil, dmn.ErrNotFound
	}
	return run, nil
}

// compiledModel returns the built model for id, building and memoising it on first use.
func (s *BeliefService) compiledModel(ctx context.Context, owner, id uuid.UUID) (*belief.Model, error) {
	s.RLock()
	c, ok := s.compiled[id]
	s.RUnlock()
	if ok {
		if c.owner != owner {
			return nil, dmn.ErrNotFound
		}
		return c.model, nil
	}

	record, err := s.Model(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	model, err := record.Build()
	if err != nil {
		s.logger.Error(fmt.Sprintf("Stored model %s no longer builds: %v", id, err))
		return nil, err
	}

	s.Lock()
	s.compiled[id] = builtModel{owner: record.OwnerID, model: model}
	s.Unlock()
	return model, nil
}

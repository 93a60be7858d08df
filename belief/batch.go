package belief

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-belief/maze"
	"golang.org/x/sync/errgroup"
)

// Sequence is one filtering request against a shared model.
type Sequence struct {
	Initial      map[maze.CellPosition]float64
	Actions      []maze.Direction
	Observations []int
}

// RunBatch filters every sequence against model using at most workers
// goroutines. Results are returned in sequence order. The first failing
// sequence cancels the ones not yet started.
func RunBatch(ctx context.Context, model *Model, seqs []Sequence, workers int) ([][]Snapshot, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([][]Snapshot, len(seqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seq := range seqs {
		i, seq := i, seq
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			snapshots, err := Run(model, seq.Initial, seq.Actions, seq.Observations)
			if err != nil {
				return fmt.Errorf("sequence %d: %w", i, err)
			}
			results[i] = snapshots
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/beka-birhanu/vinom-belief/belief"
	"github.com/beka-birhanu/vinom-belief/maze"
	"github.com/google/uuid"
)

// BeliefEntry is the probability of one cell in a sparse initial belief.
type BeliefEntry struct {
	Col int     `json:"col" bson:"col"`
	Row int     `json:"row" bson:"row"`
	P   float64 `json:"p" bson:"p"`
}

// FilterRequest is an initial belief plus the paired action and observation sequences.
type FilterRequest struct {
	Initial      []BeliefEntry    `json:"initial" bson:"initial"`
	Actions      []maze.Direction `json:"actions" bson:"actions"`
	Observations []int            `json:"observations" bson:"observations"`
}

// InitialBelief returns the initial belief keyed by cell. Repeated cells accumulate.
func (r FilterRequest) InitialBelief() map[maze.CellPosition]float64 {
	initial := make(map[maze.CellPosition]float64, len(r.Initial))
	for _, e := range r.Initial {
		initial[maze.CellPosition{Col: e.Col, Row: e.Row}] += e.P
	}
	return initial
}

// Sequence converts the request into a belief.Sequence.
func (r FilterRequest) Sequence() belief.Sequence {
	return belief.Sequence{
		Initial:      r.InitialBelief(),
		Actions:      r.Actions,
		Observations: r.Observations,
	}
}

// Digest identifies the request against modelID independently of entry order.
// Requests holding non-finite probabilities have no digest.
func (r FilterRequest) Digest(modelID uuid.UUID) (string, error) {
	entries := append([]BeliefEntry(nil), r.Initial...)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Row != entries[j].Row {
			return entries[i].Row < entries[j].Row
		}
		if entries[i].Col != entries[j].Col {
			return entries[i].Col < entries[j].Col
		}
		return entries[i].P < entries[j].P
	})

	payload, err := json.Marshal(struct {
		ModelID      uuid.UUID        `json:"model_id"`
		Initial      []BeliefEntry    `json:"initial"`
		Actions      []maze.Direction `json:"actions"`
		Observations []int            `json:"observations"`
	}{modelID, entries, r.Actions, r.Observations})
	if err != nil {
		return "", fmt.Errorf("digesting request: %w", err)
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Run is a completed filtering run.
type Run struct {
	ID        uuid.UUID         `bson:"_id" json:"id"`
	ModelID   uuid.UUID         `bson:"modelId" json:"model_id"`
	OwnerID   uuid.UUID         `bson:"ownerId" json:"owner_id"`
	Request   FilterRequest     `bson:"request" json:"request"`
	Snapshots []belief.Snapshot `bson:"snapshots" json:"snapshots"`
	CreatedAt time.Time         `bson:"createdAt" json:"created_at"`
}

// NewRun records the snapshots produced for request.
func NewRun(owner, modelID uuid.UUID, request FilterRequest, snapshots []belief.Snapshot) *Run {
	return &Run{
		ID:        uuid.New(),
		ModelID:   modelID,
		OwnerID:   owner,
		Request:   request,
		Snapshots: snapshots,
		CreatedAt: time.Now().UTC(),
	}
}

// Final returns the last snapshot of the run.
func (r *Run) Final() belief.Snapshot {
	return r.Snapshots[len(r.Snapshots)-1]
}

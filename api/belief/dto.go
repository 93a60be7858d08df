// Package beliefapi exposes maze models and belief filtering over HTTP.
package beliefapi

import (
	"time"

	"github.com/beka-birhanu/vinom-belief/belief"
	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/beka-birhanu/vinom-belief/maze"
)

// CreateModelRequest describes a maze and the confusion matrices of its agent.
type CreateModelRequest struct {
	Name                 string      `json:"name" binding:"required"`
	Passable             [][]bool    `json:"passable" binding:"required"`
	Rewards              [][]float64 `json:"rewards" binding:"required"`
	ActionConfusion      [][]float64 `json:"action_confusion" binding:"required"`
	ObservationConfusion [][]float64 `json:"observation_confusion" binding:"required"`
}

// ModelResponse is a stored model.
type ModelResponse struct {
	ID                   string      `json:"id"`
	Name                 string      `json:"name"`
	Passable             [][]bool    `json:"passable"`
	Rewards              [][]float64 `json:"rewards"`
	ActionConfusion      [][]float64 `json:"action_confusion"`
	ObservationConfusion [][]float64 `json:"observation_confusion"`
	CreatedAt            time.Time   `json:"created_at"`
}

// FilterRequest is an initial belief and the action/observation pairs to filter.
// Actions are 0 up, 1 down, 2 right, 3 left. Observations are 0 one wall, 1 two walls, 2 terminal.
type FilterRequest struct {
	Initial      []dmn.BeliefEntry `json:"initial" binding:"required"`
	Actions      []maze.Direction  `json:"actions"`
	Observations []int             `json:"observations"`
}

// BatchFilterRequest holds several filter requests against the same model.
type BatchFilterRequest struct {
	Requests []FilterRequest `json:"requests" binding:"required"`
}

// Estimate is the most likely cell of a belief.
type Estimate struct {
	Col int     `json:"col"`
	Row int     `json:"row"`
	P   float64 `json:"p"`
}

// RunResponse is a completed run with every snapshot.
type RunResponse struct {
	ID        string            `json:"id"`
	ModelID   string            `json:"model_id"`
	Steps     int               `json:"steps"`
	Snapshots []belief.Snapshot `json:"snapshots"`
	Estimate  Estimate          `json:"estimate"`
	CreatedAt time.Time         `json:"created_at"`
}

func (r FilterRequest) toDomain() dmn.FilterRequest {
	return dmn.FilterRequest{
		Initial:      r.Initial,
		Actions:      r.Actions,
		Observations: r.Observations,
	}
}

func newModelResponse(m *dmn.Model) ModelResponse {
	return ModelResponse{
		ID:                   m.ID.String(),
		Name:                 m.Name,
		Passable:             m.Passable,
		Rewards:              m.Rewards,
		ActionConfusion:      m.Config.ActionConfusion,
		ObservationConfusion: m.Config.ObservationConfusion,
		CreatedAt:            m.CreatedAt,
	}
}

func newRunResponse(r *dmn.Run) RunResponse {
	pos, p := r.Final().MostLikely()
	return RunResponse{
		ID:        r.ID.String(),
		ModelID:   r.ModelID.String(),
		Steps:     len(r.Snapshots) - 1,
		Snapshots: r.Snapshots,
		Estimate:  Estimate{Col: pos.Col, Row: pos.Row, P: p},
		CreatedAt: r.CreatedAt,
	}
}

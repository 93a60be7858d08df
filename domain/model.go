// Package domain holds the records the service persists: users, maze models and filter runs.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-belief/belief"
	"github.com/beka-birhanu/vinom-belief/maze"
	"github.com/google/uuid"
)

const maxModelNameLength = 64

var (
	// ErrNotFound is returned when a record does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")
)

// Model is a stored maze definition together with its agent models.
type Model struct {
	ID        uuid.UUID     `bson:"_id"`
	OwnerID   uuid.UUID     `bson:"ownerId"`
	Name      string        `bson:"name"`
	Passable  [][]bool      `bson:"passable"`
	Rewards   [][]float64   `bson:"rewards"`
	Config    belief.Config `bson:"config"`
	CreatedAt time.Time     `bson:"createdAt"`
}

// ModelConfig holds the parameters of a new Model.
type ModelConfig struct {
	OwnerID  uuid.UUID
	Name     string
	Passable [][]bool
	Rewards  [][]float64
	Config   belief.Config
}

// NewModel validates config by building its belief model and returns the record.
func NewModel(config ModelConfig) (*Model, error) {
	name := strings.TrimSpace(config.Name)
	if name == "" || len(name) > maxModelNameLength {
		return nil, fmt.Errorf("%w: model name must be 1-%d characters", maze.ErrConfig, maxModelNameLength)
	}

	m := &Model{
		ID:        uuid.New(),
		OwnerID:   config.OwnerID,
		Name:      name,
		Passable:  config.Passable,
		Rewards:   config.Rewards,
		Config:    config.Config,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := m.Build(); err != nil {
		return nil, err
	}
	return m, nil
}

// Build derives the maze and belief model of the record.
func (m *Model) Build() (*belief.Model, error) {
	grid, err := maze.New(m.Passable, m.Rewards)
	if err != nil {
		return nil, err
	}
	return belief.NewModel(grid, m.Config)
}

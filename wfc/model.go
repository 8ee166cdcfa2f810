package wfc

import (
	"fmt"

	"github.com/katalvlaran/voxwfc/pattern"
)

// Model is what the solver learns from an exemplar: the pattern registry and
// the adjacency rules between patterns. It is immutable and may be shared by
// any number of solvers.
type Model struct {
	Registry  *pattern.Registry
	Adjacency *pattern.AdjacencyMap
}

// NewModel numbers the exemplar's cells and derives their adjacency rules.
// Returns ErrInvalidInput (also matching pattern.ErrInvalidInput) for a nil
// or empty exemplar.
func NewModel(ex pattern.Exemplar, opts ...pattern.AdjacencyOption) (*Model, error) {
	reg, err := pattern.NewRegistry(ex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &Model{
		Registry:  reg,
		Adjacency: pattern.BuildAdjacency(reg, opts...),
	}, nil
}

// Patterns returns the number of patterns in the model.
func (m *Model) Patterns() int { return m.Registry.Len() }

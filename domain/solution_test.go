package domain

import (
	"testing"

	"github.com/beka-birhanu/sma-maze/maze"
	"github.com/beka-birhanu/sma-maze/search"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolution(t *testing.T) {
	layout := "$  \n   \n  X"
	m, err := maze.Parse(layout, nil)
	require.NoError(t, err)

	bound := 50
	res, err := search.Search(m, search.WithBound(bound), search.WithPolicy(search.Double()))
	require.NoError(t, err)

	s := NewSolution("abc", layout, &bound, search.Double(), res)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, "solved", s.Outcome)
	assert.Equal(t, "double", s.Policy)
	assert.Equal(t, []Point{{0, 0}, {1, 1}, {2, 2}}, s.Path)
	assert.Equal(t, res.Path, s.Positions())
	assert.Equal(t, 2, s.Cost)
	assert.False(t, s.CreatedAt.IsZero())

	rendered, err := s.Render()
	require.NoError(t, err)
	assert.Equal(t, "$  \n ∙ \n  X\n", rendered)
}

func TestNoSolutionRecord(t *testing.T) {
	layout := "###\n#$#\n###"
	m, err := maze.Parse(layout, nil)
	require.NoError(t, err)

	res, err := search.Search(m)
	require.NoError(t, err)

	s := NewSolution("def", layout, nil, search.Stop(), res)
	assert.Equal(t, "no_solution", s.Outcome)
	assert.Equal(t, "none", s.Policy)
	assert.Empty(t, s.Path)
	assert.Nil(t, s.Bound)
}

package solveapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	dmn "github.com/beka-birhanu/sma-maze/domain"
	"github.com/beka-birhanu/sma-maze/maze"
	"github.com/beka-birhanu/sma-maze/search"
	"github.com/beka-birhanu/sma-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type solverMock struct {
	mock.Mock
}

func (m *solverMock) Solve(ctx context.Context, req dmn.SolveRequest) (*dmn.Solution, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*dmn.Solution)
	return s, args.Error(1)
}

func (m *solverMock) Stream(ctx context.Context, req dmn.SolveRequest, observe search.Observer) (*dmn.Solution, error) {
	args := m.Called(ctx, req, observe)
	s, _ := args.Get(0).(*dmn.Solution)
	return s, args.Error(1)
}

func (m *solverMock) ByID(ctx context.Context, id uuid.UUID) (*dmn.Solution, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*dmn.Solution)
	return s, args.Error(1)
}

func (m *solverMock) Generate(cfg maze.GenerateConfig) (string, error) {
	args := m.Called(cfg)
	return args.String(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

func newEngine(t *testing.T, c *SolveController) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/api/v1")
	c.RegisterPublic(group)
	c.RegisterProtected(group)
	return engine
}

func do(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestNewSolveController(t *testing.T) {
	_, err := NewSolveController(nil)
	assert.ErrorIs(t, err, ErrNilSolver)
}

func TestSolveEndpoint(t *testing.T) {
	solver, err := service.NewSolver(nil, nil, nopLogger{}, nil)
	require.NoError(t, err)
	c, err := NewSolveController(solver)
	require.NoError(t, err)
	engine := newEngine(t, c)

	t.Run("solves a layout", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/solutions", SolveRequest{Layout: "$  \n   \n  X"})
		require.Equal(t, http.StatusOK, rec.Code)

		var res SolutionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "solved", res.Outcome)
		assert.Equal(t, []dmn.Point{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, res.Path)
		assert.Equal(t, 2, res.Cost)
		assert.Equal(t, "$  \n ∙ \n  X\n", res.Rendered)
		assert.False(t, res.Cached)
	})

	t.Run("bounded request reports a partial path", func(t *testing.T) {
		bound := 3
		rec := do(engine, http.MethodPost, "/api/v1/solutions", SolveRequest{Layout: "$    X", Bound: &bound})
		require.Equal(t, http.StatusOK, rec.Code)

		var res SolutionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "partial", res.Outcome)
		assert.Equal(t, []dmn.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, res.Path)
		require.NotNil(t, res.Bound)
		assert.Equal(t, 3, *res.Bound)
	})

	t.Run("missing layout", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/solutions", gin.H{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("layout without start", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/solutions", SolveRequest{Layout: "   X"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown policy", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/solutions", SolveRequest{Layout: "$ X", Policy: "triple"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGenerateEndpoint(t *testing.T) {
	solver, err := service.NewSolver(nil, nil, nopLogger{}, nil)
	require.NoError(t, err)
	c, err := NewSolveController(solver)
	require.NoError(t, err)
	engine := newEngine(t, c)

	t.Run("seeded maze is reproducible", func(t *testing.T) {
		seed := int64(42)
		req := GenerateRequest{Width: 4, Height: 3, Goals: 1, Seed: &seed}

		first := do(engine, http.MethodPost, "/api/v1/mazes", req)
		second := do(engine, http.MethodPost, "/api/v1/mazes", req)
		require.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())

		var res GenerateResponse
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &res))
		assert.Equal(t, seed, res.Seed)

		want, err := maze.Generate(maze.GenerateConfig{Width: 4, Height: 3, Goals: 1, Seed: seed})
		require.NoError(t, err)
		assert.Equal(t, want, res.Layout)
	})

	t.Run("oversized maze", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/mazes", GenerateRequest{Width: maze.MaxDimension + 1, Height: 2})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing dimensions", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/mazes", gin.H{"goals": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestByIDEndpoint(t *testing.T) {
	solver := new(solverMock)
	c, err := NewSolveController(solver)
	require.NoError(t, err)
	engine := newEngine(t, c)

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		solver.On("ByID", mock.Anything, id).Return(&dmn.Solution{
			ID:      id,
			Layout:  "$X",
			Outcome: "solved",
			Path:    []dmn.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
			Cost:    1,
			Cached:  true,
		}, nil).Once()

		rec := do(engine, http.MethodGet, "/api/v1/solutions/"+id.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var res SolutionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, id, res.ID)
		assert.Equal(t, "$X\n", res.Rendered)
		assert.True(t, res.Cached)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		solver.On("ByID", mock.Anything, id).Return(nil, dmn.ErrSolutionNotFound).Once()

		rec := do(engine, http.MethodGet, "/api/v1/solutions/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		id := uuid.New()
		solver.On("ByID", mock.Anything, id).Return(nil, errors.New("connection reset")).Once()

		rec := do(engine, http.MethodGet, "/api/v1/solutions/"+id.String(), nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := do(engine, http.MethodGet, "/api/v1/solutions/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	solver.AssertExpectations(t)
}

func TestImageEndpoint(t *testing.T) {
	solver := new(solverMock)
	c, err := NewSolveController(solver)
	require.NoError(t, err)
	engine := newEngine(t, c)

	id := uuid.New()
	solver.On("ByID", mock.Anything, id).Return(&dmn.Solution{
		ID:     id,
		Layout: "$ X",
		Path:   []dmn.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	}, nil)

	t.Run("png", func(t *testing.T) {
		rec := do(engine, http.MethodGet, "/api/v1/solutions/"+id.String()+"/image?scale=4", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

		cfg, err := png.DecodeConfig(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.Width)
		assert.Equal(t, 4, cfg.Height)
	})

	t.Run("scale out of range", func(t *testing.T) {
		rec := do(engine, http.MethodGet, "/api/v1/solutions/"+id.String()+"/image?scale=500", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

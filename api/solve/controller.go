package solveapi

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	dmn "github.com/beka-birhanu/sma-maze/domain"
	"github.com/beka-birhanu/sma-maze/maze"
	"github.com/beka-birhanu/sma-maze/service"
	"github.com/beka-birhanu/sma-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrNilSolver = errors.New("solve controller requires a solver")

// SolveController serves maze generation and search requests.
type SolveController struct {
	solver i.Solver
}

// NewSolveController initializes a SolveController.
func NewSolveController(s i.Solver) (*SolveController, error) {
	if s == nil {
		return nil, ErrNilSolver
	}
	return &SolveController{
		solver: s,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SolveController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/mazes", sc.generate)
}

// RegisterProtected registers protected routes.
func (sc *SolveController) RegisterProtected(route *gin.RouterGroup) {
	solutions := route.Group("/solutions")
	{
		solutions.POST("", sc.solve)
		solutions.GET("/:ID", sc.byID)
		solutions.GET("/:ID/image", sc.image)
	}
	route.GET("/streams/solutions", rejectPlainHTTP, sc.stream)
}

// generate creates a random layout.
func (sc *SolveController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := time.Now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}

	layout, err := sc.solver.Generate(maze.GenerateConfig{
		Width:  request.Width,
		Height: request.Height,
		Goals:  request.Goals,
		Seed:   seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &GenerateResponse{Layout: layout, Seed: seed})
}

// solve searches the posted layout.
func (sc *SolveController) solve(ctx *gin.Context) {
	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	solution, err := sc.solver.Solve(ctx.Request.Context(), dmn.SolveRequest{
		Layout: request.Layout,
		Bound:  request.Bound,
		Policy: request.Policy,
		Factor: request.Factor,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	sc.writeSolution(ctx, http.StatusOK, solution)
}

// byID returns a stored solution.
func (sc *SolveController) byID(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid solution id"})
		return
	}

	solution, err := sc.solver.ByID(ctx.Request.Context(), ID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	sc.writeSolution(ctx, http.StatusOK, solution)
}

// image draws a stored solution as a PNG.
func (sc *SolveController) image(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid solution id"})
		return
	}

	var query ImageQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	solution, err := sc.solver.ByID(ctx.Request.Context(), ID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := solution.DrawPNG(&buf, query.Scale); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "stored layout is unreadable"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (sc *SolveController) writeSolution(ctx *gin.Context, status int, solution *dmn.Solution) {
	response, err := newSolutionResponse(solution)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "stored layout is unreadable"})
		return
	}
	ctx.JSON(status, response)
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrSolutionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

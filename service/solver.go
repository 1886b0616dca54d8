package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	dmn "github.com/beka-birhanu/sma-maze/domain"
	"github.com/beka-birhanu/sma-maze/maze"
	"github.com/beka-birhanu/sma-maze/search"
	"github.com/beka-birhanu/sma-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxLayoutBytes = 1 << 20
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNilLogger      = errors.New("solver requires a logger")
)

// Options tune the Solver.
type Options struct {
	MaxLayoutBytes int  // Larger layouts are rejected before parsing
	DefaultBound   *int // Bound used when a request sets none; nil means unbounded
}

// Solver parses layouts, runs the bounded search and keeps the results.
// Repo and cache are optional; without a repo nothing is stored or cached.
type Solver struct {
	repo   i.SolutionRepo
	cache  i.SolutionCache
	logger i.Logger
	opts   *Options
}

// NewSolver creates a Solver. A nil opts uses the defaults.
func NewSolver(repo i.SolutionRepo, cache i.SolutionCache, logger i.Logger, opts *Options) (*Solver, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	if opts == nil {
		opts = &Options{}
	}

	if opts.MaxLayoutBytes <= 0 {
		opts.MaxLayoutBytes = defaultMaxLayoutBytes
	}

	return &Solver{
		repo:   repo,
		cache:  cache,
		logger: logger,
		opts:   opts,
	}, nil
}

// Solve searches the requested layout. Layouts already solved with the same
// bound settings are served from the cache.
func (s *Solver) Solve(ctx context.Context, req dmn.SolveRequest) (*dmn.Solution, error) {
	p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	if cached := s.cached(ctx, p.fingerprint); cached != nil {
		return cached, nil
	}

	if s.cache != nil && s.repo != nil {
		unlock, err := s.cache.Lock(ctx, p.fingerprint)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("locking fingerprint %s: %s", p.fingerprint, err))
		} else {
			defer unlock()
			// another instance may have solved it while we waited
			if cached := s.cached(ctx, p.fingerprint); cached != nil {
				return cached, nil
			}
		}
	}

	return s.search(ctx, p, nil)
}

// Stream searches the requested layout and reports every expansion to observe.
// It always searches, even when the layout is cached. Nothing is stored when
// ctx is done by the time the search ends.
func (s *Solver) Stream(ctx context.Context, req dmn.SolveRequest, observe search.Observer) (*dmn.Solution, error) {
	p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, p, observe)
}

// prepared is a validated request.
type prepared struct {
	req         dmn.SolveRequest
	maze        *maze.Maze
	policy      search.Policy
	bound       *int
	fingerprint string
}

func (s *Solver) prepare(req dmn.SolveRequest) (*prepared, error) {
	if len(req.Layout) > s.opts.MaxLayoutBytes {
		return nil, fmt.Errorf("%w: layout exceeds %d bytes", ErrInvalidRequest, s.opts.MaxLayoutBytes)
	}

	m, err := maze.Parse(req.Layout, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	policy, err := search.ParsePolicy(req.Policy, req.Factor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	bound := req.Bound
	if bound == nil {
		bound = s.opts.DefaultBound
	}

	return &prepared{
		req:         req,
		maze:        m,
		policy:      policy,
		bound:       bound,
		fingerprint: fingerprint(req.Layout, bound, policy),
	}, nil
}

// search runs the bounded search, then stores and caches the result.
func (s *Solver) search(ctx context.Context, p *prepared, observe search.Observer) (*dmn.Solution, error) {
	searchOpts := []search.Option{search.WithPolicy(p.policy)}
	if p.bound != nil {
		searchOpts = append(searchOpts, search.WithBound(*p.bound))
	}
	if observe != nil {
		searchOpts = append(searchOpts, search.WithObserver(observe))
	}

	res, err := search.Search(p.maze, searchOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	solution := dmn.NewSolution(p.fingerprint, p.req.Layout, p.bound, p.policy, res)
	s.logger.Info(fmt.Sprintf("Searched layout %s: outcome=%s expanded=%d closed=%d", p.fingerprint[:12], solution.Outcome, res.Expanded, res.Closed))

	if s.repo == nil {
		return solution, nil
	}

	// the caller gave up while the search ran
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, solution); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to save solution: %s", err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, p.fingerprint, solution.ID); err != nil {
			s.logger.Warning(fmt.Sprintf("Failed to cache solution %s: %s", solution.ID, err))
		}
	}

	return solution, nil
}

// ByID returns a stored solution.
func (s *Solver) ByID(ctx context.Context, id uuid.UUID) (*dmn.Solution, error) {
	if s.repo == nil {
		return nil, dmn.ErrSolutionNotFound
	}
	return s.repo.ByID(ctx, id)
}

// Generate creates a random layout.
func (s *Solver) Generate(cfg maze.GenerateConfig) (string, error) {
	layout, err := maze.Generate(cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	s.logger.Info(fmt.Sprintf("Generated %dx%d maze with %d goals", cfg.Width, cfg.Height, cfg.Goals))
	return layout, nil
}

// cached returns the stored solution for fp, or nil when there is none.
// Cache failures are logged and treated as misses.
func (s *Solver) cached(ctx context.Context, fp string) *dmn.Solution {
	if s.cache == nil || s.repo == nil {
		return nil
	}

	id, ok, err := s.cache.Lookup(ctx, fp)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("cache lookup for %s: %s", fp, err))
		return nil
	}
	if !ok {
		return nil
	}

	solution, err := s.repo.ByID(ctx, id)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("cached solution %s unavailable: %s", id, err))
		return nil
	}

	solution.Cached = true
	return solution
}

// fingerprint identifies a layout together with the settings it is searched with.
func fingerprint(layout string, bound *int, policy search.Policy) string {
	boundStr := "unbounded"
	if bound != nil {
		boundStr = strconv.Itoa(*bound)
	}

	sum := sha256.Sum256([]byte(layout + "\x00" + boundStr + "\x00" + policy.String()))
	return hex.EncodeToString(sum[:])
}

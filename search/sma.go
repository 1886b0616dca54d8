// Package search implements a simplified memory-bounded A* (SMA*) over a maze.
//
// The search always expands the open cell with the smallest f = g + h. When a
// bound is set and the closed set grows past it, the Policy either stops and
// returns the path to the cell being expanded, or grows the bound and carries on.
//
// Cells are closed as soon as they are discovered, not only when expanded, so
// a cheaper route to an already discovered cell is never taken. Together with
// the Manhattan heuristic under diagonal moves this can return paths that are
// not the shortest.
package search

import (
	"container/heap"
	"errors"

	"github.com/beka-birhanu/sma-maze/maze"
)

// Search input errors.
var (
	ErrInvalidInput        = errors.New("search requires a maze")
	ErrInvalidBound        = errors.New("bound must not be negative")
	ErrInvalidGrowthFactor = errors.New("growth factor must be greater than 1")
)

// Outcome tells how a search ended.
type Outcome int

const (
	// NoSolution means the frontier emptied before a goal was reached.
	NoSolution Outcome = iota
	// Solved means the path ends on a goal.
	Solved
	// Partial means the bound stopped the search; the path ends on the last expanded cell.
	Partial
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Partial:
		return "partial"
	default:
		return "no_solution"
	}
}

// Result contains the outcome of a search.
type Result struct {
	Outcome  Outcome
	Path     []maze.CellPosition // Start first; nil for NoSolution
	Cost     int                 // g of the last path cell
	Expanded int                 // cells taken from the frontier
	Closed   int                 // closed set size when the search ended
	Bound    float64             // bound when the search ended, zero when unbounded
}

// Step describes one expansion, passed to an Observer.
type Step struct {
	Current maze.CellPosition
	G, H, F int
	Open    int
	Closed  int
	Bound   float64
}

// Observer is called after every expansion.
type Observer func(Step)

// Options defines parameters for the search.
type Options struct {
	Bound    *int
	Policy   Policy
	Observer Observer
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithBound caps the closed set size before the policy kicks in.
func WithBound(bound int) Option {
	return func(o *Options) { o.Bound = &bound }
}

// WithPolicy sets what happens when the bound is exceeded. Defaults to Stop.
func WithPolicy(p Policy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithObserver registers a callback run after each expansion.
func WithObserver(fn Observer) Option {
	return func(o *Options) { o.Observer = fn }
}

// node is the per-run bookkeeping for one cell, keyed by its linear id.
type node struct {
	id     int
	pos    maze.CellPosition
	g, h   int
	f      int
	parent int // -1 for the start cell
	seq    int // order of entry into the frontier
	index  int // position in the frontier heap, -1 when not in it
	closed bool
}

type run struct {
	maze   *maze.Maze
	nodes  map[int]*node
	open   frontier
	closed int
	seq    int
}

// Search runs SMA* from the maze start to the first goal reached.
// Errors are returned only for unusable input; running out of cells and
// stopping at the bound are reported through Result.Outcome.
func Search(m *maze.Maze, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, ErrInvalidInput
	}
	start, ok := m.Start()
	if !ok {
		return Result{}, maze.ErrMissingStart
	}

	o := Options{Policy: Stop()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Policy.validate(); err != nil {
		return Result{}, err
	}

	var bound float64
	if o.Bound != nil {
		if *o.Bound < 0 {
			return Result{}, ErrInvalidBound
		}
		bound = float64(*o.Bound)
	}

	r := &run{maze: m, nodes: make(map[int]*node)}
	first := r.node(start)
	first.h = nearestGoal(m, start)
	first.f = first.h
	r.push(first)

	expanded := 0
	for r.open.Len() > 0 {
		current := heap.Pop(&r.open).(*node)
		r.close(current)
		expanded++

		if m.IsGoal(current.pos) {
			return r.result(Solved, current, expanded, bound), nil
		}

		for pos := range m.Neighbors(current.pos) {
			next := r.node(pos)
			if next.closed {
				continue
			}

			next.parent = current.id
			next.g = current.g + 1
			next.h = Manhattan(current.pos, next.pos)
			next.f = next.g + next.h
			if next.index < 0 {
				r.push(next)
			}
			r.close(next)
		}

		if o.Observer != nil {
			o.Observer(Step{
				Current: current.pos,
				G:       current.g,
				H:       current.h,
				F:       current.f,
				Open:    r.open.Len(),
				Closed:  r.closed,
				Bound:   bound,
			})
		}

		if o.Bound != nil && float64(r.closed) > bound {
			if !o.Policy.Greedy() {
				return r.result(Partial, current, expanded, bound), nil
			}
			bound = o.Policy.grow(bound)
		}
	}

	return Result{Outcome: NoSolution, Expanded: expanded, Closed: r.closed, Bound: bound}, nil
}

// node returns the bookkeeping for pos, creating it on first discovery.
func (r *run) node(pos maze.CellPosition) *node {
	id := pos.Row*r.maze.Cols() + pos.Col
	if n, ok := r.nodes[id]; ok {
		return n
	}
	n := &node{id: id, pos: pos, parent: -1, index: -1}
	r.nodes[id] = n
	return n
}

func (r *run) push(n *node) {
	n.seq = r.seq
	r.seq++
	heap.Push(&r.open, n)
}

// close counts every insertion into the closed set, including the second
// one made when an already discovered cell is expanded.
func (r *run) close(n *node) {
	n.closed = true
	r.closed++
}

func (r *run) result(outcome Outcome, last *node, expanded int, bound float64) Result {
	return Result{
		Outcome:  outcome,
		Path:     reconstructPath(r.nodes, last),
		Cost:     last.g,
		Expanded: expanded,
		Closed:   r.closed,
		Bound:    bound,
	}
}

// nearestGoal is the start's heuristic; zero when the maze has no goals.
func nearestGoal(m *maze.Maze, from maze.CellPosition) int {
	goals := m.Goals()
	if len(goals) == 0 {
		return 0
	}
	best := Manhattan(from, goals[0])
	for _, goal := range goals[1:] {
		best = min(best, Manhattan(from, goal))
	}
	return best
}

package engine

import (
	"fmt"
	"sync/atomic"
)

// Search depth limits. Depth counts the replies searched below each root
// move, so depth d looks d+1 plies ahead.
const (
	DefaultDepth = 3
	MaxDepth     = 6
)

// DefaultFace is the display token the engine reports to hosts
const DefaultFace = "👾"

// Evaluate scores b from the point of view of s: the weights of s's cells
// minus the weights of the opponent's cells. Empty cells count for nothing,
// so Evaluate(b, Black) == -Evaluate(b, White).
func Evaluate(b Board, s Stone) int {
	if !s.Valid() {
		return 0
	}
	opp := s.Opponent()
	score := 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			switch b[y][x] {
			case s:
				score += Weights[y][x]
			case opp:
				score -= Weights[y][x]
			}
		}
	}
	return score
}

// Options configures an Engine
type Options struct {
	Depth int    // Replies searched below each root move (0 = one-ply greedy)
	Face  string // Display token returned by Face ("" = DefaultFace)
}

// DefaultOptions returns depth 3 with the default face
func DefaultOptions() Options {
	return Options{
		Depth: DefaultDepth,
		Face:  DefaultFace,
	}
}

// Stats holds cumulative search counters
type Stats struct {
	Searches uint64 // Root searches run
	Nodes    uint64 // Minimax nodes visited
}

// Engine is a minimax player with a fixed depth. It is safe for concurrent
// use: each search works on its own board copies and only the counters are
// shared.
type Engine struct {
	opts Options

	searches atomic.Uint64
	nodes    atomic.Uint64
}

// NewEngine creates an engine with the given options
func NewEngine(opts Options) (*Engine, error) {
	if opts.Depth < 0 || opts.Depth > MaxDepth {
		return nil, fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidDepth, opts.Depth, MaxDepth)
	}
	if opts.Face == "" {
		opts.Face = DefaultFace
	}
	return &Engine{opts: opts}, nil
}

// Depth returns the configured search depth
func (e *Engine) Depth() int {
	return e.opts.Depth
}

// Face returns the engine's display token
func (e *Engine) Face() string {
	return e.opts.Face
}

// Place picks the engine's move for s on b. ok is false when s has no legal
// placement. b is passed by value and never modified.
func (e *Engine) Place(b Board, s Stone) (Move, bool) {
	res := e.AnalyzePosition(b, s)
	return res.BestMove, res.HasMove
}

// Stats returns the cumulative search counters
func (e *Engine) Stats() Stats {
	return Stats{
		Searches: e.searches.Load(),
		Nodes:    e.nodes.Load(),
	}
}

// ResetStats zeroes the search counters
func (e *Engine) ResetStats() {
	e.searches.Store(0)
	e.nodes.Store(0)
}

// record adds one finished search to the counters
func (e *Engine) record(nodes int) {
	e.searches.Add(1)
	e.nodes.Add(uint64(nodes))
}

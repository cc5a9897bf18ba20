// Package game runs reversi games between two players.
//
// The runner owns the turn loop: it asks each side for a placement, applies
// it through the engine's capture resolver, records passes for a side that
// cannot move, and stops when neither side can continue.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/reversiengine/pkg/engine"
)

// Player is anything that can choose a placement. Place receives a copy of
// the board and must return a legal move for s, or ok=false to pass.
type Player interface {
	Place(b engine.Board, s engine.Stone) (engine.Move, bool)
	Face() string
}

// Options controls a single game
type Options struct {
	Start       *engine.Board // Starting board (nil = standard opening)
	FirstToMove engine.Stone  // Side to move first (Empty = Black)
	Logger      *log.Logger   // Per-turn trace (nil = silent)
}

// Turn is one entry in the game record
type Turn struct {
	Stone   engine.Stone
	Move    engine.Move // Valid only if !Pass
	Pass    bool
	Flipped int // Stones flipped by the placement
}

// String renders the turn in transcript notation
func (t Turn) String() string {
	if t.Pass {
		return "pass"
	}
	return t.Move.String()
}

// Result is a finished game
type Result struct {
	ID          string
	BlackFace   string
	WhiteFace   string
	Start       engine.Board
	FirstToMove engine.Stone
	Moves       []Turn
	Final       engine.Board
	BlackCount  int
	WhiteCount  int
	Winner      engine.Stone // Empty for a draw
	Duration    time.Duration
}

// DiscDiff returns s's disc count minus the opponent's
func (r *Result) DiscDiff(s engine.Stone) int {
	diff := r.BlackCount - r.WhiteCount
	if s == engine.White {
		return -diff
	}
	return diff
}

// Play runs a game to completion. An illegal placement from either player
// aborts the game with an error wrapping engine.ErrIllegalMove.
func Play(ctx context.Context, black, white Player, opts Options) (*Result, error) {
	start := time.Now()

	board := engine.StartingPosition()
	if opts.Start != nil {
		board = *opts.Start
	}
	mover := opts.FirstToMove
	if mover == engine.Empty {
		mover = engine.Black
	}
	if !mover.Valid() {
		return nil, fmt.Errorf("first to move: %w", engine.ErrInvalidStone)
	}

	players := map[engine.Stone]Player{
		engine.Black: black,
		engine.White: white,
	}

	result := &Result{
		ID:          uuid.NewString(),
		BlackFace:   black.Face(),
		WhiteFace:   white.Face(),
		Start:       board,
		FirstToMove: mover,
	}

	passes := 0
	for passes < 2 && board.Count(engine.Empty) > 0 && !engine.GameOver(board) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		turn := Turn{Stone: mover, Pass: true}
		if engine.HasAnyLegalPlacement(board, mover) {
			p := players[mover]
			m, ok := p.Place(board, mover)
			if ok {
				next, err := board.Play(mover, m)
				if err != nil {
					return nil, fmt.Errorf("%s (%v) at ply %d: %w", p.Face(), mover, len(result.Moves)+1, err)
				}
				turn = Turn{
					Stone:   mover,
					Move:    m,
					Flipped: next.Count(mover) - board.Count(mover) - 1,
				}
				board = next
			}
		}

		if turn.Pass {
			passes++
		} else {
			passes = 0
		}
		result.Moves = append(result.Moves, turn)

		if opts.Logger != nil {
			opts.Logger.Printf("game %s ply %d: %v %v (flipped %d)",
				result.ID[:8], len(result.Moves), mover, turn, turn.Flipped)
		}

		mover = mover.Opponent()
	}

	result.finish(board)
	result.Duration = time.Since(start)
	return result, nil
}

// finish fills in the final board, counts and winner
func (r *Result) finish(b engine.Board) {
	r.Final = b
	r.BlackCount = b.Count(engine.Black)
	r.WhiteCount = b.Count(engine.White)
	switch {
	case r.BlackCount > r.WhiteCount:
		r.Winner = engine.Black
	case r.WhiteCount > r.BlackCount:
		r.Winner = engine.White
	default:
		r.Winner = engine.Empty
	}
}

// ErrBadRecord is returned when a game record does not replay
var ErrBadRecord = errors.New("game record does not replay")

// Replay applies the recorded moves to Start and returns the resulting
// board. Each placement must be legal for the recorded side, and sides must
// alternate starting from FirstToMove.
func (r *Result) Replay() (engine.Board, error) {
	board := r.Start
	mover := r.FirstToMove
	if mover == engine.Empty {
		mover = engine.Black
	}

	for i, t := range r.Moves {
		if t.Stone != mover {
			return board, fmt.Errorf("%w: ply %d played by %v, expected %v", ErrBadRecord, i+1, t.Stone, mover)
		}
		if !t.Pass {
			next, err := board.Play(t.Stone, t.Move)
			if err != nil {
				return board, fmt.Errorf("%w: ply %d: %w", ErrBadRecord, i+1, err)
			}
			board = next
		}
		mover = mover.Opponent()
	}
	return board, nil
}

// Rebuild replays the record and recomputes the final board, counts and
// flip counts. It is used for records read back from storage.
func (r *Result) Rebuild() error {
	final, err := r.Replay()
	if err != nil {
		return err
	}
	board := r.Start
	for i := range r.Moves {
		t := &r.Moves[i]
		if t.Pass {
			continue
		}
		next := engine.Simulate(board, t.Stone, t.Move)
		t.Flipped = next.Count(t.Stone) - board.Count(t.Stone) - 1
		board = next
	}
	r.finish(final)
	return nil
}

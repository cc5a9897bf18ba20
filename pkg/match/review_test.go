package match

import (
	"context"
	"errors"
	"testing"

	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/game"
)

func TestReviewEngineGameHasNoLoss(t *testing.T) {
	// A depth-1 engine reviewed at depth 1 always finds its own move best
	a, _ := engine.NewEngine(engine.Options{Depth: 1})
	b, _ := engine.NewEngine(engine.Options{Depth: 1})
	res, err := game.Play(context.Background(), a, b, game.Options{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	review, err := ReviewGame(context.Background(), res, 1)
	if err != nil {
		t.Fatalf("ReviewGame: %v", err)
	}

	placements := 0
	for _, turn := range res.Moves {
		if !turn.Pass {
			placements++
		}
	}
	if len(review.Turns) != placements {
		t.Errorf("%d turns reviewed, want %d", len(review.Turns), placements)
	}
	if len(review.Errors) != 0 {
		t.Errorf("errors = %+v, want none", review.Errors)
	}
	for i, p := range review.Players {
		if p.TotalLoss != 0 || p.LossPerMove != 0 || p.Blunders != 0 {
			t.Errorf("player %d = %+v, want no loss", i, p)
		}
	}
	if review.Players[0].Moves+review.Players[1].Moves != placements {
		t.Errorf("player move counts %d + %d, want %d",
			review.Players[0].Moves, review.Players[1].Moves, placements)
	}
	if review.Players[0].Face != engine.DefaultFace || review.Players[1].Stone != engine.White {
		t.Errorf("players = %+v", review.Players)
	}
}

func TestReviewFindsBlunder(t *testing.T) {
	start, err := engine.ParseBoard(`
		. O X . . .
		. . . . . .
		. . O X . .
		. . X O . .
		. . . . . .
		. . . . . .`)
	if err != nil {
		t.Fatal(err)
	}
	res := &game.Result{
		ID:    "blunder",
		Start: start,
		Moves: []game.Turn{{Stone: engine.Black, Move: engine.Move{X: 2, Y: 1}}},
	}

	review, err := ReviewGame(context.Background(), res, 1)
	if err != nil {
		t.Fatalf("ReviewGame: %v", err)
	}
	if len(review.Errors) != 1 {
		t.Fatalf("errors = %+v, want one", review.Errors)
	}
	e := review.Errors[0]
	if e.Ply != 1 || e.Position != engine.BoardID(start) || e.Loss != 94 || e.Best != (engine.Move{}) {
		t.Errorf("error = %+v, want ply 1 losing 94 to a1", e)
	}
	black := review.Players[0]
	if black.Moves != 1 || black.Blunders != 1 || black.TotalLoss != 94 || black.LossPerMove != 94 {
		t.Errorf("black = %+v", black)
	}
	if review.Players[1].Moves != 0 {
		t.Errorf("white = %+v", review.Players[1])
	}
}

func TestReviewStatsMatchTurns(t *testing.T) {
	res, err := game.Play(context.Background(), game.NewRandomPlayer(3), game.NewRandomPlayer(4), game.Options{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	review, err := ReviewGame(context.Background(), res, 0)
	if err != nil {
		t.Fatalf("ReviewGame: %v", err)
	}

	var loss [2]int
	var bad [2]int
	for _, tr := range review.Turns {
		if tr.Loss < 0 || tr.Rank < 1 || tr.Rank > tr.NumMoves {
			t.Errorf("turn %+v out of range", tr)
		}
		idx := 0
		if tr.Stone == engine.White {
			idx = 1
		}
		loss[idx] += tr.Loss
		if tr.Skill != engine.SkillNone {
			bad[idx]++
		}
	}
	for i, p := range review.Players {
		if p.TotalLoss != loss[i] {
			t.Errorf("player %d TotalLoss = %d, want %d", i, p.TotalLoss, loss[i])
		}
		if p.Blunders+p.Errors+p.Doubtful != bad[i] {
			t.Errorf("player %d error counts %+v, want %d total", i, p, bad[i])
		}
		if p.Moves > 1 && p.StdDevLoss < 0 {
			t.Errorf("player %d StdDevLoss = %v", i, p.StdDevLoss)
		}
	}
}

func TestReviewRejects(t *testing.T) {
	bad := &game.Result{
		Start: engine.StartingPosition(),
		Moves: []game.Turn{{Stone: engine.Black, Move: engine.Move{X: 0, Y: 0}}},
	}
	if _, err := ReviewGame(context.Background(), bad, 1); !errors.Is(err, game.ErrBadRecord) {
		t.Errorf("illegal record error = %v, want ErrBadRecord", err)
	}

	ok := &game.Result{
		Start: engine.StartingPosition(),
		Moves: []game.Turn{{Stone: engine.Black, Move: engine.Move{X: 2, Y: 1}}},
	}
	if _, err := ReviewGame(context.Background(), ok, engine.MaxDepth+1); !errors.Is(err, engine.ErrInvalidDepth) {
		t.Errorf("bad depth error = %v, want ErrInvalidDepth", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReviewGame(ctx, ok, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v, want context.Canceled", err)
	}
}

package match

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/game"
)

// GameReview is the move-by-move review of one game.
type GameReview struct {
	ID      string          `json:"id"`
	Depth   int             `json:"depth"`
	Turns   []TurnReview    `json:"turns"`   // Placements only; passes are not reviewed
	Players [2]PlayerReview `json:"players"` // Black, White
	Errors  []TurnReview    `json:"errors"`  // Turns rated below SkillNone
}

// TurnReview is the review of one placement.
type TurnReview struct {
	Ply      int    `json:"ply"` // 1-based index into the game record
	Position string `json:"position"`
	engine.MoveReview
}

// PlayerReview summarizes one side's play.
type PlayerReview struct {
	Face        string       `json:"face"`
	Stone       engine.Stone `json:"stone"`
	Moves       int          `json:"moves"`        // Placements reviewed
	Forced      int          `json:"forced"`       // Placements with only one legal choice
	TotalLoss   int          `json:"total_loss"`   // Sum of score lost
	LossPerMove float64      `json:"loss_per_move"`
	StdDevLoss  float64      `json:"stddev_loss"`
	Blunders    int          `json:"blunders"` // Very bad (>= 50)
	Errors      int          `json:"errors"`   // Bad (20-49)
	Doubtful    int          `json:"doubtful"` // Doubtful (8-19)
}

// ReviewGame replays res and reviews every placement at depth.
func ReviewGame(ctx context.Context, res *game.Result, depth int) (*GameReview, error) {
	if _, err := res.Replay(); err != nil {
		return nil, err
	}
	e, err := engine.NewEngine(engine.Options{Depth: depth})
	if err != nil {
		return nil, err
	}

	review := &GameReview{
		ID:    res.ID,
		Depth: depth,
	}
	review.Players[0] = PlayerReview{Face: res.BlackFace, Stone: engine.Black}
	review.Players[1] = PlayerReview{Face: res.WhiteFace, Stone: engine.White}

	var losses [2][]float64
	board := res.Start

	for i, t := range res.Moves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if t.Pass {
			continue
		}

		mr, err := e.ReviewMove(board, t.Stone, t.Move)
		if err != nil {
			return nil, fmt.Errorf("%w: ply %d: %w", game.ErrBadRecord, i+1, err)
		}
		tr := TurnReview{
			Ply:        i + 1,
			Position:   engine.BoardID(board),
			MoveReview: *mr,
		}
		review.Turns = append(review.Turns, tr)
		if mr.Skill != engine.SkillNone {
			review.Errors = append(review.Errors, tr)
		}

		idx := 0
		if t.Stone == engine.White {
			idx = 1
		}
		p := &review.Players[idx]
		p.Moves++
		if mr.NumMoves == 1 {
			p.Forced++
		}
		p.TotalLoss += mr.Loss
		switch mr.Skill {
		case engine.SkillVeryBad:
			p.Blunders++
		case engine.SkillBad:
			p.Errors++
		case engine.SkillDoubtful:
			p.Doubtful++
		}
		losses[idx] = append(losses[idx], float64(mr.Loss))

		board = engine.Simulate(board, t.Stone, t.Move)
	}

	for i := range review.Players {
		if len(losses[i]) == 0 {
			continue
		}
		if len(losses[i]) == 1 {
			review.Players[i].LossPerMove = losses[i][0]
			continue
		}
		review.Players[i].LossPerMove, review.Players[i].StdDevLoss = stat.MeanStdDev(losses[i], nil)
	}

	return review, nil
}

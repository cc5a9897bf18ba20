package game

import (
	"math/rand"

	"github.com/yourusername/reversiengine/pkg/engine"
)

// RandomFace is the display token of RandomPlayer
const RandomFace = "🎲"

// RandomPlayer picks uniformly among the legal placements. It is not safe
// for concurrent use.
type RandomPlayer struct {
	rng *rand.Rand
}

// NewRandomPlayer creates a random player with a fixed seed
func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

// Place implements Player
func (p *RandomPlayer) Place(b engine.Board, s engine.Stone) (engine.Move, bool) {
	moves := engine.LegalMoves(b, s)
	if len(moves) == 0 {
		return engine.Move{}, false
	}
	return moves[p.rng.Intn(len(moves))], true
}

// Face implements Player
func (p *RandomPlayer) Face() string {
	return RandomFace
}

// RandomOpening plays plies random placements from the standard opening and
// returns the board and the side to move. A blocked side passes.
func RandomOpening(rng *rand.Rand, plies int) (engine.Board, engine.Stone) {
	b := engine.StartingPosition()
	s := engine.Black
	for i := 0; i < plies && !engine.GameOver(b); i++ {
		moves := engine.LegalMoves(b, s)
		if len(moves) > 0 {
			b = engine.Simulate(b, s, moves[rng.Intn(len(moves))])
		}
		s = s.Opponent()
	}
	return b, s
}

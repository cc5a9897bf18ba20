package engine

// searcher runs one minimax search and counts the nodes it visits
type searcher struct {
	nodes int
}

// Minimax scores b by exhaustive search to the given depth. maximizing says
// whether original is the mover at this node; the score is always
// Evaluate(leaf, original).
//
// The search stops at depth 0 or when neither side can move. A mover with no
// legal placement passes: the same board is searched with the other side to
// move and the depth budget unchanged.
func Minimax(b Board, depth int, maximizing bool, original Stone) int {
	var sr searcher
	return sr.minimax(b, depth, maximizing, original)
}

// SelectBestMove returns the legal placement for s with the highest minimax
// score at maxDepth. Ties go to the first move in row-major order. ok is
// false when s has no legal placement.
func SelectBestMove(b Board, s Stone, maxDepth int) (Move, bool) {
	var sr searcher
	scored := sr.scoreMoves(b, s, maxDepth)
	if len(scored) == 0 {
		return Move{}, false
	}
	best := scored[0]
	for _, sm := range scored[1:] {
		if sm.Score > best.Score {
			best = sm
		}
	}
	return best.Move, true
}

// scoreMoves scores each legal root move in row-major order. The reply to a
// root move is the opponent's, so each child starts as a minimizing node.
func (sr *searcher) scoreMoves(b Board, s Stone, depth int) []ScoredMove {
	moves := LegalMoves(b, s)
	scored := make([]ScoredMove, 0, len(moves))
	for _, m := range moves {
		next := Simulate(b, s, m)
		scored = append(scored, ScoredMove{
			Move:  m,
			Score: sr.minimax(next, depth, false, s),
		})
	}
	return scored
}

func (sr *searcher) minimax(b Board, depth int, maximizing bool, original Stone) int {
	sr.nodes++

	if depth <= 0 || !original.Valid() || GameOver(b) {
		return Evaluate(b, original)
	}

	mover := original
	if !maximizing {
		mover = original.Opponent()
	}

	moves := LegalMoves(b, mover)
	if len(moves) == 0 {
		// Forced pass. GameOver was false, so the other side can move.
		return sr.minimax(b, depth, !maximizing, original)
	}

	best := sr.minimax(Simulate(b, mover, moves[0]), depth-1, !maximizing, original)
	for _, m := range moves[1:] {
		v := sr.minimax(Simulate(b, mover, m), depth-1, !maximizing, original)
		if maximizing && v > best || !maximizing && v < best {
			best = v
		}
	}
	return best
}

package engine

import (
	"sort"
)

// ScoredMove is a legal move together with its minimax score
type ScoredMove struct {
	Move  Move
	Score int
}

// AnalysisResult contains every legal move ranked by score
type AnalysisResult struct {
	Moves     []ScoredMove // All legal moves, best first; ties keep row-major order
	BestMove  Move         // Best move (valid only if HasMove)
	BestScore int          // Score of the best move
	HasMove   bool         // False when the player must pass
	NumMoves  int          // Number of legal moves
	Depth     int          // Depth searched
	Nodes     int          // Minimax nodes visited
}

// AnalyzePosition scores every legal move for s at the given depth and
// returns them ranked. BestMove agrees with SelectBestMove.
func AnalyzePosition(b Board, s Stone, depth int) *AnalysisResult {
	var sr searcher
	scored := sr.scoreMoves(b, s, depth)

	result := &AnalysisResult{
		Moves:    scored,
		NumMoves: len(scored),
		Depth:    depth,
	}

	// Stable sort so equal scores stay in row-major order
	sort.SliceStable(result.Moves, func(i, j int) bool {
		return result.Moves[i].Score > result.Moves[j].Score
	})

	if len(result.Moves) > 0 {
		result.BestMove = result.Moves[0].Move
		result.BestScore = result.Moves[0].Score
		result.HasMove = true
	}
	result.Nodes = sr.nodes

	return result
}

// AnalyzePosition analyzes b at the engine's depth and updates its counters
func (e *Engine) AnalyzePosition(b Board, s Stone) *AnalysisResult {
	result := AnalyzePosition(b, s, e.opts.Depth)
	e.record(result.Nodes)
	return result
}

// RankMoves returns the top n moves for s. If n <= 0, all moves are returned.
func (e *Engine) RankMoves(b Board, s Stone, n int) []ScoredMove {
	result := e.AnalyzePosition(b, s)
	if n <= 0 || n > len(result.Moves) {
		return result.Moves
	}
	return result.Moves[:n]
}

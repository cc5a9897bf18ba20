package engine

// SkillType rates a placement by the score it gave up against the best one.
type SkillType int

const (
	SkillVeryBad  SkillType = iota // Blunder: loses >= 50
	SkillBad                       // Error: loses 20-49
	SkillDoubtful                  // Doubtful: loses 8-19
	SkillNone                      // Best or close to it
)

// String returns the display name of the skill type.
func (s SkillType) String() string {
	return [...]string{"Very Bad", "Bad", "Doubtful", "None"}[s]
}

// Abbr returns the abbreviated notation (??, ?, ?!).
func (s SkillType) Abbr() string {
	return [...]string{"??", "?", "?!", ""}[s]
}

// SkillThresholds are the score losses for each skill rating. A corner is
// worth 100, so giving one away is always a blunder.
var SkillThresholds = [4]int{
	50, // blunder
	20, // error
	8,  // doubtful
	0,  // good
}

// ClassifySkill returns the skill rating for a score loss.
// loss should be positive for moves worse than best.
func ClassifySkill(loss int) SkillType {
	if loss >= SkillThresholds[0] {
		return SkillVeryBad
	} else if loss >= SkillThresholds[1] {
		return SkillBad
	} else if loss >= SkillThresholds[2] {
		return SkillDoubtful
	}
	return SkillNone
}

// MoveReview compares a played placement with the best one at some depth.
type MoveReview struct {
	Stone       Stone
	Played      Move
	Best        Move
	PlayedScore int
	BestScore   int
	Loss        int // BestScore - PlayedScore, never negative
	Skill       SkillType
	Rank        int // 1 = among the best
	NumMoves    int
}

// ReviewMove scores the placement m for s on b against every alternative.
// It returns an *IllegalMoveError if m is not legal.
func ReviewMove(b Board, s Stone, m Move, depth int) (*MoveReview, error) {
	if !IsLegalPlacement(b, s, m.X, m.Y) {
		return nil, &IllegalMoveError{Stone: s, Move: m}
	}
	return newReview(AnalyzePosition(b, s, depth), s, m), nil
}

// ReviewMove reviews at the engine's depth and updates its counters.
func (e *Engine) ReviewMove(b Board, s Stone, m Move) (*MoveReview, error) {
	if !IsLegalPlacement(b, s, m.X, m.Y) {
		return nil, &IllegalMoveError{Stone: s, Move: m}
	}
	analysis := e.AnalyzePosition(b, s)
	return newReview(analysis, s, m), nil
}

// newReview reads the played move out of a ranked analysis. m must be one
// of the analyzed moves.
func newReview(analysis *AnalysisResult, s Stone, m Move) *MoveReview {
	r := &MoveReview{
		Stone:     s,
		Played:    m,
		Best:      analysis.BestMove,
		BestScore: analysis.BestScore,
		NumMoves:  analysis.NumMoves,
	}
	for _, sm := range analysis.Moves {
		if sm.Move == m {
			r.PlayedScore = sm.Score
			break
		}
	}
	r.Loss = r.BestScore - r.PlayedScore
	for _, sm := range analysis.Moves {
		if sm.Score > r.PlayedScore {
			r.Rank++
		}
	}
	r.Rank++
	r.Skill = ClassifySkill(r.Loss)
	return r
}

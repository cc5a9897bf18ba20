// Package api provides the HTTP/JSON API for the reversi engine.
package api

import "github.com/yourusername/reversiengine/pkg/engine"

// Error codes returned in ErrorResponse.Code
const (
	CodeInvalidJSON   = "INVALID_JSON"
	CodeInvalidBoard  = "INVALID_BOARD"
	CodeInvalidStone  = "INVALID_STONE"
	CodeInvalidDepth  = "INVALID_DEPTH"
	CodeInvalidGames  = "INVALID_GAMES"
	CodeServerBusy    = "SERVER_BUSY"
	CodeSelfPlayError = "SELFPLAY_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// ============================================================================
// Request Types
// ============================================================================

// PositionRequest names a position and the side to move. Either Board (rows
// of 0/1/2 cells) or Position (a board ID) must be set.
type PositionRequest struct {
	Board    [][]int `json:"board,omitempty"`    // Rows (y) of cells (x)
	Position string  `json:"position,omitempty"` // 12-character board ID
	Stone    int     `json:"stone"`              // 1 = black, 2 = white
}

// MoveRequest is the request body for move selection
type MoveRequest struct {
	PositionRequest
	Depth    *int `json:"depth,omitempty"`     // Search depth (default: server depth)
	NumMoves int  `json:"num_moves,omitempty"` // Max ranked moves to return (0 = all)
}

// EvaluateRequest is the request body for static evaluation
type EvaluateRequest struct {
	PositionRequest
}

// LegalRequest is the request body for listing legal placements
type LegalRequest struct {
	PositionRequest
}

// SelfPlayRequest is the request body for an engine-vs-engine match
type SelfPlayRequest struct {
	Games       int   `json:"games"`                  // Number of games (default 10)
	DepthA      int   `json:"depth_a"`                // Depth of player A
	DepthB      int   `json:"depth_b"`                // Depth of player B
	RandomPlies int   `json:"random_plies,omitempty"` // Random opening plies
	Seed        int64 `json:"seed,omitempty"`         // Opening seed (0 = random)
	Workers     int   `json:"workers,omitempty"`      // Parallel games (0 = all cores)
}

// ============================================================================
// Response Types
// ============================================================================

// MoveRef is a placement in both notations
type MoveRef struct {
	Move string `json:"move"` // Algebraic, e.g. "c2"
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// ScoredMoveResponse is a ranked placement
type ScoredMoveResponse struct {
	MoveRef
	Score int `json:"score"` // Minimax score for the mover
}

// MoveResponse is the response for move selection
type MoveResponse struct {
	Move     *MoveRef             `json:"move"`      // Chosen placement, null on pass
	Pass     bool                 `json:"pass"`      // True when the mover has no placement
	Moves    []ScoredMoveResponse `json:"moves"`     // Ranked placements, best first
	NumLegal int                  `json:"num_legal"` // Total legal placements
	Depth    int                  `json:"depth"`     // Depth searched
	Nodes    int                  `json:"nodes"`     // Minimax nodes visited
	Position string               `json:"position"`  // Board ID searched
}

// EvaluateResponse is the response for static evaluation
type EvaluateResponse struct {
	Score    int    `json:"score"` // Weighted score for the stone
	Black    int    `json:"black"`
	White    int    `json:"white"`
	Empty    int    `json:"empty"`
	GameOver bool   `json:"game_over"`
	Position string `json:"position"`
}

// LegalResponse is the response for legal placements
type LegalResponse struct {
	Moves []MoveRef `json:"moves"`
	Count int       `json:"count"`
}

// SelfPlayResponse is the outcome of a match, from player A's side
type SelfPlayResponse struct {
	ID             string  `json:"id"`
	Games          int     `json:"games"`
	WinsA          int     `json:"wins_a"`
	WinsB          int     `json:"wins_b"`
	Draws          int     `json:"draws"`
	ScoreA         float64 `json:"score_a"`
	MeanDiscDiff   float64 `json:"mean_disc_diff"`
	StdDevDiscDiff float64 `json:"std_dev_disc_diff"`
	CI95           float64 `json:"ci_95"`
	Seed           int64   `json:"seed"`
	DurationMS     int64   `json:"duration_ms"`
}

// SelfPlayProgress is streamed while a match runs
type SelfPlayProgress struct {
	GamesCompleted int     `json:"games_completed"`
	GamesTotal     int     `json:"games_total"`
	Percent        float64 `json:"percent"`
	WinsA          int     `json:"wins_a"`
	WinsB          int     `json:"wins_b"`
	Draws          int     `json:"draws"`
}

// ErrorResponse is returned when an error occurs
type ErrorResponse struct {
	Error string `json:"error"`          // Error message
	Code  string `json:"code,omitempty"` // Error code
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status  string       `json:"status"`           // "ok"
	Version string       `json:"version"`          // Server version
	Ready   bool         `json:"ready"`            // Whether an engine is configured
	Depth   int          `json:"depth"`            // Default search depth
	Engine  *EngineStats `json:"engine,omitempty"` // Search counters
	Pool    *PoolStats   `json:"pool,omitempty"`   // Worker pool statistics
}

// EngineStats mirrors engine.Stats
type EngineStats struct {
	Searches uint64 `json:"searches"`
	Nodes    uint64 `json:"nodes"`
}

// ============================================================================
// Helper Functions
// ============================================================================

// moveRef converts an engine move
func moveRef(m engine.Move) MoveRef {
	return MoveRef{Move: m.String(), X: m.X, Y: m.Y}
}

// analysisToResponse converts a ranked analysis, keeping at most n moves
func analysisToResponse(res *engine.AnalysisResult, b engine.Board, n int) MoveResponse {
	resp := MoveResponse{
		Pass:     !res.HasMove,
		NumLegal: res.NumMoves,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		Position: engine.BoardID(b),
		Moves:    []ScoredMoveResponse{},
	}
	if res.HasMove {
		ref := moveRef(res.BestMove)
		resp.Move = &ref
	}

	if n <= 0 || n > len(res.Moves) {
		n = len(res.Moves)
	}
	for _, sm := range res.Moves[:n] {
		resp.Moves = append(resp.Moves, ScoredMoveResponse{MoveRef: moveRef(sm.Move), Score: sm.Score})
	}
	return resp
}

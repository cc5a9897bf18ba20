package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/match"
)

// Self-play limits per request
const (
	DefaultSelfPlayGames = 10
	MaxSelfPlayGames     = 1000
)

// errInvalidGames is returned for a self-play request outside the game limits
var errInvalidGames = errors.New("invalid number of games")

// Handlers holds the HTTP handlers and engine reference.
type Handlers struct {
	engine  *engine.Engine
	version string
	pool    *WorkerPool
}

// NewHandlers creates a new Handlers instance without a worker pool.
func NewHandlers(e *engine.Engine, version string) *Handlers {
	return &Handlers{
		engine:  e,
		version: version,
	}
}

// NewHandlersWithPool creates a new Handlers instance with a worker pool.
func NewHandlersWithPool(e *engine.Engine, version string, pool *WorkerPool) *Handlers {
	return &Handlers{
		engine:  e,
		version: version,
		pool:    pool,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// errorCode maps an engine error to an HTTP status and error code
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrInvalidBoard):
		return http.StatusBadRequest, CodeInvalidBoard
	case errors.Is(err, engine.ErrInvalidStone):
		return http.StatusBadRequest, CodeInvalidStone
	case errors.Is(err, engine.ErrInvalidDepth):
		return http.StatusBadRequest, CodeInvalidDepth
	case errors.Is(err, errInvalidGames):
		return http.StatusBadRequest, CodeInvalidGames
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// writeEngineError writes the response for an error from parsePosition and friends
func writeEngineError(w http.ResponseWriter, err error) {
	status, code := errorCode(err)
	writeError(w, status, err.Error(), code)
}

// parsePosition resolves the board and stone of a request
func parsePosition(req PositionRequest) (engine.Board, engine.Stone, error) {
	var (
		b   engine.Board
		err error
	)
	switch {
	case req.Board != nil && req.Position != "":
		return b, engine.Empty, fmt.Errorf("%w: give board or position, not both", engine.ErrInvalidBoard)
	case req.Board != nil:
		b, err = engine.FromRows(req.Board)
	case req.Position != "":
		b, err = engine.BoardFromID(req.Position)
	default:
		return b, engine.Empty, fmt.Errorf("%w: board or position is required", engine.ErrInvalidBoard)
	}
	if err != nil {
		return b, engine.Empty, err
	}

	s, err := engine.StoneFromCode(req.Stone)
	if err != nil {
		return b, engine.Empty, err
	}
	return b, s, nil
}

// resolveDepth returns the requested depth or the server default
func (h *Handlers) resolveDepth(depth *int) (int, error) {
	if depth == nil {
		if h.engine != nil {
			return h.engine.Depth(), nil
		}
		return engine.DefaultDepth, nil
	}
	if *depth < 0 || *depth > engine.MaxDepth {
		return 0, fmt.Errorf("%w: %d (want 0-%d)", engine.ErrInvalidDepth, *depth, engine.MaxDepth)
	}
	return *depth, nil
}

// acquireSearch takes a search slot if the pool is configured. On failure
// the busy response has already been written.
func (h *Handlers) acquireSearch(w http.ResponseWriter, r *http.Request) (release func(), ok bool) {
	release, err := h.searchSlot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", CodeServerBusy)
		return nil, false
	}
	return release, true
}

// searchSlot waits for a search slot if the pool is configured
func (h *Handlers) searchSlot(ctx context.Context) (release func(), err error) {
	if h.pool == nil {
		return func() {}, nil
	}
	if err := h.pool.AcquireSearch(ctx); err != nil {
		return nil, err
	}
	return h.pool.ReleaseSearch, nil
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Ready:   h.engine != nil,
		Depth:   engine.DefaultDepth,
	}

	if h.engine != nil {
		st := h.engine.Stats()
		resp.Depth = h.engine.Depth()
		resp.Engine = &EngineStats{Searches: st.Searches, Nodes: st.Nodes}
	}
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}

	writeJSON(w, http.StatusOK, resp)
}

// analyze runs a ranked search, through the shared engine when the depth
// matches so its counters stay meaningful
func (h *Handlers) analyze(b engine.Board, s engine.Stone, depth int) *engine.AnalysisResult {
	if h.engine != nil && depth == h.engine.Depth() {
		return h.engine.AnalyzePosition(b, s)
	}
	return engine.AnalyzePosition(b, s, depth)
}

// Move handles POST /api/move
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireSearch(w, r)
	if !ok {
		return
	}
	defer release()

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", CodeInvalidJSON)
		return
	}

	b, s, err := parsePosition(req.PositionRequest)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	depth, err := h.resolveDepth(req.Depth)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysisToResponse(h.analyze(b, s, depth), b, req.NumMoves))
}

// Evaluate handles POST /api/evaluate
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireSearch(w, r)
	if !ok {
		return
	}
	defer release()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", CodeInvalidJSON)
		return
	}

	b, s, err := parsePosition(req.PositionRequest)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse(b, s))
}

func evaluateResponse(b engine.Board, s engine.Stone) EvaluateResponse {
	return EvaluateResponse{
		Score:    engine.Evaluate(b, s),
		Black:    b.Count(engine.Black),
		White:    b.Count(engine.White),
		Empty:    b.Count(engine.Empty),
		GameOver: engine.GameOver(b),
		Position: engine.BoardID(b),
	}
}

// Legal handles POST /api/legal
func (h *Handlers) Legal(w http.ResponseWriter, r *http.Request) {
	var req LegalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", CodeInvalidJSON)
		return
	}

	b, s, err := parsePosition(req.PositionRequest)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, legalResponse(b, s))
}

func legalResponse(b engine.Board, s engine.Stone) LegalResponse {
	moves := engine.LegalMoves(b, s)
	resp := LegalResponse{Moves: make([]MoveRef, 0, len(moves)), Count: len(moves)}
	for _, m := range moves {
		resp.Moves = append(resp.Moves, moveRef(m))
	}
	return resp
}

// validateSelfPlay fills defaults and checks limits
func validateSelfPlay(req *SelfPlayRequest) error {
	if req.Games == 0 {
		req.Games = DefaultSelfPlayGames
	}
	if req.Games < 0 || req.Games > MaxSelfPlayGames {
		return fmt.Errorf("%w: %d (want 1-%d)", errInvalidGames, req.Games, MaxSelfPlayGames)
	}
	for _, d := range []int{req.DepthA, req.DepthB} {
		if d < 0 || d > engine.MaxDepth {
			return fmt.Errorf("%w: %d (want 0-%d)", engine.ErrInvalidDepth, d, engine.MaxDepth)
		}
	}
	return nil
}

// runSelfPlay plays a validated match
func runSelfPlay(ctx context.Context, req SelfPlayRequest, callback match.ProgressCallback) (*SelfPlayResponse, error) {
	res, err := match.RunWithProgress(ctx,
		match.EngineFactory(req.DepthA),
		match.EngineFactory(req.DepthB),
		match.Options{
			Games:       req.Games,
			Workers:     req.Workers,
			RandomPlies: req.RandomPlies,
			Seed:        req.Seed,
		},
		callback)
	if err != nil {
		return nil, err
	}

	return &SelfPlayResponse{
		ID:             uuid.NewString(),
		Games:          res.Games,
		WinsA:          res.WinsA,
		WinsB:          res.WinsB,
		Draws:          res.Draws,
		ScoreA:         res.ScoreA,
		MeanDiscDiff:   res.MeanDiscDiff,
		StdDevDiscDiff: res.StdDevDiscDiff,
		CI95:           res.CI95,
		Seed:           res.Seed,
		DurationMS:     res.Duration.Milliseconds(),
	}, nil
}

// SelfPlay handles POST /api/selfplay
func (h *Handlers) SelfPlay(w http.ResponseWriter, r *http.Request) {
	// Matches are CPU-heavy and use the small tier
	if h.pool != nil {
		if err := h.pool.AcquireMatch(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", CodeServerBusy)
			return
		}
		defer h.pool.ReleaseMatch()
	}

	var req SelfPlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", CodeInvalidJSON)
		return
	}
	if err := validateSelfPlay(&req); err != nil {
		writeEngineError(w, err)
		return
	}

	resp, err := runSelfPlay(r.Context(), req, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), CodeSelfPlayError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

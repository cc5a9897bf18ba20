package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/yourusername/reversiengine/pkg/match"
)

// SelfPlayStream streams match progress as Server-Sent Events.
// GET /api/selfplay/stream?games=...&depth_a=...&depth_b=...&random_plies=...&seed=...
func (h *Handlers) SelfPlayStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}

	query := r.URL.Query()
	req := SelfPlayRequest{
		Games:       parseIntParam(query.Get("games"), DefaultSelfPlayGames),
		DepthA:      parseIntParam(query.Get("depth_a"), 1),
		DepthB:      parseIntParam(query.Get("depth_b"), 0),
		RandomPlies: parseIntParam(query.Get("random_plies"), 4),
		Workers:     parseIntParam(query.Get("workers"), 0),
	}
	if seed, err := strconv.ParseInt(query.Get("seed"), 10, 64); err == nil {
		req.Seed = seed
	}
	if err := validateSelfPlay(&req); err != nil {
		writeSSEError(w, err.Error())
		return
	}

	if h.pool != nil {
		if err := h.pool.AcquireMatch(r.Context()); err != nil {
			writeSSEError(w, "server busy")
			return
		}
		defer h.pool.ReleaseMatch()
	}

	callback := func(p match.Progress) {
		writeSSEEvent(w, "progress", SelfPlayProgress{
			GamesCompleted: p.GamesCompleted,
			GamesTotal:     p.GamesTotal,
			Percent:        p.Percent,
			WinsA:          p.WinsA,
			WinsB:          p.WinsB,
			Draws:          p.Draws,
		})
		flusher.Flush()
	}

	resp, err := runSelfPlay(r.Context(), req, callback)
	if err != nil {
		writeSSEError(w, "self-play failed: "+err.Error())
		return
	}

	writeSSEEvent(w, "result", resp)
	flusher.Flush()

	writeSSEEvent(w, "done", nil)
	flusher.Flush()
}

// writeSSEEvent writes a Server-Sent Event to the response.
func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

// writeSSEError writes an error event and closes the stream.
func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// parseIntParam parses an integer from a string with a default value.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/external"
)

const version = "0.1.0"

var errNilArgument = errors.New("nil argument")

type moveJSON struct {
	Move string `json:"move"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// place reads host cell codes and asks e for a move.
func place(e *engine.Engine, codes []int32, stone int) (engine.Move, bool, error) {
	if len(codes) != engine.Size*engine.Size {
		return engine.Move{}, false, fmt.Errorf("%w: %d cells", engine.ErrInvalidBoard, len(codes))
	}
	rows := make([][]int, engine.Size)
	for y := range rows {
		rows[y] = make([]int, engine.Size)
		for x := range rows[y] {
			rows[y][x] = int(codes[y*engine.Size+x])
		}
	}
	b, err := engine.FromRows(rows)
	if err != nil {
		return engine.Move{}, false, err
	}
	s, err := engine.StoneFromCode(stone)
	if err != nil {
		return engine.Move{}, false, err
	}
	m, ok := e.Place(b, s)
	return m, ok, nil
}

func parseArgs(position string, stone int) (engine.Board, engine.Stone, error) {
	b, err := external.ParsePosition(position)
	if err != nil {
		return b, engine.Empty, err
	}
	s, err := engine.StoneFromCode(stone)
	return b, s, err
}

func evaluateJSON(position string, stone int) (string, error) {
	b, s, err := parseArgs(position, stone)
	if err != nil {
		return "", err
	}
	return marshal(map[string]interface{}{
		"score":     engine.Evaluate(b, s),
		"black":     b.Count(engine.Black),
		"white":     b.Count(engine.White),
		"game_over": engine.GameOver(b),
	})
}

func bestMoveJSON(e *engine.Engine, position string, stone int) (string, error) {
	b, s, err := parseArgs(position, stone)
	if err != nil {
		return "", err
	}
	analysis := e.AnalyzePosition(b, s)
	if !analysis.HasMove {
		return marshal(map[string]interface{}{"pass": true, "num_legal": 0})
	}
	best := analysis.BestMove
	return marshal(map[string]interface{}{
		"move":      best.String(),
		"x":         best.X,
		"y":         best.Y,
		"score":     analysis.BestScore,
		"num_legal": analysis.NumMoves,
		"depth":     analysis.Depth,
	})
}

func legalJSON(position string, stone int) (string, error) {
	b, s, err := parseArgs(position, stone)
	if err != nil {
		return "", err
	}
	moves := []moveJSON{}
	for _, m := range engine.LegalMoves(b, s) {
		moves = append(moves, moveJSON{Move: m.String(), X: m.X, Y: m.Y})
	}
	return marshal(map[string]interface{}{"moves": moves, "count": len(moves)})
}

func errorJSON(err error) string {
	out, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(out)
}

func marshal(v interface{}) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// main is required for -buildmode=c-shared.
func main() {}

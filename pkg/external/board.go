package external

import (
	"fmt"
	"strings"

	"github.com/yourusername/reversiengine/pkg/engine"
)

// ParsePosition parses a position argument. Three forms are accepted:
//
//	AAAAYAAJAAAA                           board ID (12 characters)
//	..............OX....XO..............   36 cells, row-major
//	....../....../..OX../..XO../....../......   six rows separated by '/'
//
// Cells use the engine's board symbols: . or 0 for empty, X/B/1 for black,
// O/W/2 for white.
func ParsePosition(arg string) (engine.Board, error) {
	arg = strings.TrimSpace(arg)
	arg = strings.TrimPrefix(arg, "board:")

	switch {
	case len(arg) == 12:
		return engine.BoardFromID(arg)
	case len(arg) == engine.Size*engine.Size:
		rows := make([]string, engine.Size)
		for y := range rows {
			rows[y] = arg[y*engine.Size : (y+1)*engine.Size]
		}
		return engine.ParseBoard(strings.Join(rows, "\n"))
	case strings.Contains(arg, "/"):
		rows := strings.Split(arg, "/")
		if len(rows) != engine.Size {
			return engine.Board{}, fmt.Errorf("%w: %d rows, want %d", engine.ErrInvalidBoard, len(rows), engine.Size)
		}
		return engine.ParseBoard(strings.Join(rows, "\n"))
	default:
		return engine.Board{}, fmt.Errorf("%w: cannot read %q", engine.ErrInvalidBoard, arg)
	}
}

// FormatPosition renders a board in the 36-cell form
func FormatPosition(b engine.Board) string {
	var sb strings.Builder
	for y := 0; y < engine.Size; y++ {
		for x := 0; x < engine.Size; x++ {
			sb.WriteByte(b[y][x].Symbol())
		}
	}
	return sb.String()
}

// formatMoves renders moves space separated, or "none"
func formatMoves(moves []engine.Move) string {
	if len(moves) == 0 {
		return "none"
	}
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

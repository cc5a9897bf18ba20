// Package engine provides the move-selection engine for 6x6 reversi.
package engine

import (
	"fmt"
	"strings"

	"github.com/yourusername/reversiengine/internal/boardid"
)

// Size is the board dimension. The weight table is declared with the same
// constant, so the two always agree.
const Size = 6

// Stone is the state of one cell
type Stone uint8

const (
	Empty Stone = iota // No stone
	Black              // First player, cell code 1
	White              // Second player, cell code 2
)

// Opponent returns the other player. Empty has no opponent and returns Empty.
func (s Stone) Opponent() Stone {
	if s != Black && s != White {
		return Empty
	}
	return 3 - s
}

// Valid reports whether s is one of the two players
func (s Stone) Valid() bool {
	return s == Black || s == White
}

// String returns the display name of the stone
func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("stone(%d)", uint8(s))
}

// Symbol returns the single-character board symbol of the stone
func (s Stone) Symbol() byte {
	switch s {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '.'
}

// ParseStone parses a stone from its cell code or name
func ParseStone(str string) (Stone, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "1", "b", "x", "black":
		return Black, nil
	case "2", "w", "o", "white":
		return White, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrInvalidStone, str)
}

// StoneFromCode converts a boundary cell code (1 or 2) to a player stone
func StoneFromCode(code int) (Stone, error) {
	s := Stone(code)
	if code < 0 || code > 2 || !s.Valid() {
		return Empty, fmt.Errorf("%w: code %d", ErrInvalidStone, code)
	}
	return s, nil
}

// Board is a 6x6 grid indexed [y][x]. It is a value type: assigning or
// passing a Board copies every cell.
type Board [Size][Size]Stone

// Move is a placement at column X, row Y
type Move struct {
	X int
	Y int
}

// String returns the move in algebraic form: column letter, then 1-based row
func (m Move) String() string {
	if !InBounds(m.X, m.Y) {
		return fmt.Sprintf("(%d,%d)", m.X, m.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+m.X, m.Y+1)
}

// ParseMove parses an algebraic move such as "c4".
// "pass" parses successfully with ok == false.
func ParseMove(str string) (m Move, ok bool, err error) {
	str = strings.ToLower(strings.TrimSpace(str))
	if str == "pass" || str == "--" {
		return Move{}, false, nil
	}
	if len(str) != 2 {
		return Move{}, false, fmt.Errorf("%w: %q", ErrInvalidMove, str)
	}
	m = Move{X: int(str[0] - 'a'), Y: int(str[1] - '1')}
	if !InBounds(m.X, m.Y) {
		return Move{}, false, fmt.Errorf("%w: %q", ErrInvalidMove, str)
	}
	return m, true, nil
}

// InBounds reports whether (x, y) is on the board
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// StartingPosition returns the opening board: the central 2x2 cross with
// white on the main diagonal and black on the anti-diagonal.
func StartingPosition() Board {
	var b Board
	mid := Size / 2
	b[mid-1][mid-1], b[mid][mid] = White, White
	b[mid-1][mid], b[mid][mid-1] = Black, Black
	return b
}

// At returns the stone at (x, y)
func (b Board) At(x, y int) Stone {
	return b[y][x]
}

// Count returns the number of cells holding s
func (b Board) Count(s Stone) int {
	n := 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b[y][x] == s {
				n++
			}
		}
	}
	return n
}

// Empties returns the number of empty cells
func (b Board) Empties() int {
	return b.Count(Empty)
}

// FromRows converts the host representation (rows of 0/1/2 codes) to a Board
func FromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: %d rows, want %d", ErrInvalidBoard, len(rows), Size)
	}
	for y, row := range rows {
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, y, len(row), Size)
		}
		for x, code := range row {
			if code < 0 || code > 2 {
				return b, fmt.Errorf("%w: cell (%d,%d) has code %d", ErrInvalidBoard, x, y, code)
			}
			b[y][x] = Stone(code)
		}
	}
	return b, nil
}

// Rows converts the board to the host representation
func (b Board) Rows() [][]int {
	rows := make([][]int, Size)
	for y := range rows {
		rows[y] = make([]int, Size)
		for x := range rows[y] {
			rows[y][x] = int(b[y][x])
		}
	}
	return rows
}

// ParseBoard reads a board from text: Size non-blank lines of Size symbols.
// Black is X, B, 1 or ●; white is O, W, 2 or ○; empty is . or 0.
// Spaces inside a line are ignored.
func ParseBoard(text string) (Board, error) {
	var b Board
	y := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), "")
		if line == "" {
			continue
		}
		if y >= Size {
			return b, fmt.Errorf("%w: more than %d rows", ErrInvalidBoard, Size)
		}
		x := 0
		for _, r := range line {
			if x >= Size {
				return b, fmt.Errorf("%w: row %d is longer than %d cells", ErrInvalidBoard, y, Size)
			}
			switch r {
			case '.', '0', '-':
				b[y][x] = Empty
			case 'X', 'x', 'B', 'b', '1', '●':
				b[y][x] = Black
			case 'O', 'o', 'W', 'w', '2', '○':
				b[y][x] = White
			default:
				return b, fmt.Errorf("%w: unexpected symbol %q at (%d,%d)", ErrInvalidBoard, r, x, y)
			}
			x++
		}
		if x != Size {
			return b, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, y, x, Size)
		}
		y++
	}
	if y != Size {
		return b, fmt.Errorf("%w: %d rows, want %d", ErrInvalidBoard, y, Size)
	}
	return b, nil
}

// String renders the board with column letters and row numbers
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for x := 0; x < Size; x++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('a' + x))
	}
	sb.WriteByte('\n')
	for y := 0; y < Size; y++ {
		fmt.Fprintf(&sb, "%2d", y+1)
		for x := 0; x < Size; x++ {
			sb.WriteByte(' ')
			sb.WriteByte(b[y][x].Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// cells flattens the board row-major for ID encoding
func (b Board) cells() [boardid.Cells]uint8 {
	var cells [boardid.Cells]uint8
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			cells[y*Size+x] = uint8(b[y][x])
		}
	}
	return cells
}

// BoardID returns the 12-character ID of the board
func BoardID(b Board) string {
	return boardid.Encode(b.cells())
}

// BoardFromID decodes a board ID
func BoardFromID(id string) (Board, error) {
	var b Board
	cells, err := boardid.Decode(strings.TrimSpace(id))
	if err != nil {
		return b, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	for i, c := range cells {
		b[i/Size][i%Size] = Stone(c)
	}
	return b, nil
}

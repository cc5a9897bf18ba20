package engine

// directions are the eight (dx, dy) steps a capture line can follow
var directions = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// captureRun returns how many opponent stones a placement of s at (x, y)
// would capture along (dx, dy). The run counts only if it ends at one of
// s's stones; running into the edge or an empty cell captures nothing.
func captureRun(b *Board, s Stone, x, y, dx, dy int) int {
	opp := s.Opponent()
	n := 0
	nx, ny := x+dx, y+dy
	for InBounds(nx, ny) && b[ny][nx] == opp {
		n++
		nx += dx
		ny += dy
	}
	if n > 0 && InBounds(nx, ny) && b[ny][nx] == s {
		return n
	}
	return 0
}

// IsLegalPlacement reports whether s may be placed at (x, y): the cell is on
// the board, empty, and at least one direction captures.
func IsLegalPlacement(b Board, s Stone, x, y int) bool {
	if !InBounds(x, y) || b[y][x] != Empty || !s.Valid() {
		return false
	}
	for _, d := range directions {
		if captureRun(&b, s, x, y, d[0], d[1]) > 0 {
			return true
		}
	}
	return false
}

// HasAnyLegalPlacement reports whether s has at least one legal placement.
// The scan stops at the first one found.
func HasAnyLegalPlacement(b Board, s Stone) bool {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if IsLegalPlacement(b, s, x, y) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns every legal placement for s in row-major order (y, then x)
func LegalMoves(b Board, s Stone) []Move {
	var moves []Move
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if IsLegalPlacement(b, s, x, y) {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

// GameOver reports whether neither player can place a stone
func GameOver(b Board) bool {
	return !HasAnyLegalPlacement(b, Black) && !HasAnyLegalPlacement(b, White)
}

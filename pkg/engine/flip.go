package engine

// ApplyPlacementAndFlip places s at (x, y) and flips every captured line.
// It returns the number of stones flipped.
//
// The placement must already be legal for s. Capture legality is not
// re-checked; an off-board or occupied cell panics with *ContractError.
func ApplyPlacementAndFlip(b *Board, s Stone, x, y int) int {
	if !InBounds(x, y) {
		panic(&ContractError{Op: "ApplyPlacementAndFlip", Stone: s, X: x, Y: y, Reason: "cell is off the board"})
	}
	if b[y][x] != Empty {
		panic(&ContractError{Op: "ApplyPlacementAndFlip", Stone: s, X: x, Y: y, Reason: "cell is occupied"})
	}
	if !s.Valid() {
		panic(&ContractError{Op: "ApplyPlacementAndFlip", Stone: s, X: x, Y: y, Reason: "stone is not a player"})
	}

	b[y][x] = s

	flipped := 0
	for _, d := range directions {
		n := captureRun(b, s, x, y, d[0], d[1])
		for i := 1; i <= n; i++ {
			b[y+d[1]*i][x+d[0]*i] = s
		}
		flipped += n
	}
	return flipped
}

// Simulate returns the board after s plays m. The argument is not modified.
func Simulate(b Board, s Stone, m Move) Board {
	next := b
	ApplyPlacementAndFlip(&next, s, m.X, m.Y)
	return next
}

// Play is the checked form of Simulate for hosts: an illegal placement
// returns ErrIllegalMove and the original board.
func (b Board) Play(s Stone, m Move) (Board, error) {
	if !IsLegalPlacement(b, s, m.X, m.Y) {
		return b, &IllegalMoveError{Stone: s, Move: m}
	}
	return Simulate(b, s, m), nil
}

package engine

import (
	"errors"
	"math/rand"
	"testing"
)

// mustParse parses a board or fails the test
func mustParse(t *testing.T, text string) Board {
	t.Helper()
	b, err := ParseBoard(text)
	if err != nil {
		t.Fatalf("ParseBoard error: %v", err)
	}
	return b
}

// randomBoard fills every cell with a random code
func randomBoard(rng *rand.Rand) Board {
	var b Board
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			b[y][x] = Stone(rng.Intn(3))
		}
	}
	return b
}

// randomGame plays up to plies random legal moves from the start,
// passing when blocked
func randomGame(rng *rand.Rand, plies int) Board {
	b := StartingPosition()
	s := Black
	for i := 0; i < plies && !GameOver(b); i++ {
		moves := LegalMoves(b, s)
		if len(moves) > 0 {
			b = Simulate(b, s, moves[rng.Intn(len(moves))])
		}
		s = s.Opponent()
	}
	return b
}

func TestLegalMovesStartingPosition(t *testing.T) {
	b := StartingPosition()

	tests := []struct {
		stone Stone
		want  []Move
	}{
		{Black, []Move{{2, 1}, {1, 2}, {4, 3}, {3, 4}}},
		{White, []Move{{3, 1}, {4, 2}, {1, 3}, {2, 4}}},
	}

	for _, tc := range tests {
		got := LegalMoves(b, tc.stone)
		if len(got) != len(tc.want) {
			t.Fatalf("LegalMoves(%v) = %v, want %v", tc.stone, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("LegalMoves(%v)[%d] = %v, want %v", tc.stone, i, got[i], tc.want[i])
			}
			if !IsLegalPlacement(b, tc.stone, got[i].X, got[i].Y) {
				t.Errorf("%v reported by LegalMoves but not legal", got[i])
			}
		}
	}
}

func TestIsLegalPlacementRejects(t *testing.T) {
	b := StartingPosition()

	tests := []struct {
		name string
		s    Stone
		x, y int
	}{
		{"off board left", Black, -1, 2},
		{"off board bottom", Black, 2, Size},
		{"occupied", Black, 2, 2},
		{"no capture", Black, 0, 0},
		{"adjacent but own stone", Black, 4, 2},
		{"empty stone", Empty, 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if IsLegalPlacement(b, tc.s, tc.x, tc.y) {
				t.Errorf("IsLegalPlacement(%v, %d, %d) = true", tc.s, tc.x, tc.y)
			}
		})
	}
}

func TestRunToEdgeIsNotACapture(t *testing.T) {
	b := mustParse(t, `
		. O O O O O
		. . . . . .
		. . . . . .
		. . . . . .
		. . . . . .
		. . . . . .`)

	if IsLegalPlacement(b, Black, 0, 0) {
		t.Error("a run of white stones ending at the edge must not be capturable")
	}
	if HasAnyLegalPlacement(b, Black) {
		t.Error("black has no stones and cannot have a legal placement")
	}
}

func TestApplyPlacementAndFlipOpening(t *testing.T) {
	b := StartingPosition()
	before := b

	flipped := ApplyPlacementAndFlip(&b, Black, 2, 1)

	if flipped != 1 {
		t.Errorf("flipped = %d, want 1", flipped)
	}
	if b.At(2, 1) != Black || b.At(2, 2) != Black {
		t.Error("expected black at c2 and c3 after c2")
	}
	if b.Count(Black) != 4 || b.Count(White) != 1 {
		t.Errorf("counts = %d/%d, want 4/1", b.Count(Black), b.Count(White))
	}
	if before == b {
		t.Error("board should have changed")
	}
}

func TestApplyPlacementAndFlipMultipleDirections(t *testing.T) {
	b := mustParse(t, `
		. O O X . .
		O O . . . .
		X . X . . .
		. . . . . .
		. . . . . .
		. . . . . .`)

	flipped := ApplyPlacementAndFlip(&b, Black, 0, 0)
	if flipped != 4 {
		t.Errorf("flipped = %d, want 4", flipped)
	}

	want := mustParse(t, `
		X X X X . .
		X X . . . .
		X . X . . .
		. . . . . .
		. . . . . .
		. . . . . .`)
	if b != want {
		t.Errorf("board after a1:\n%v\nwant:\n%v", b, want)
	}
}

func TestApplyPlacementAndFlipLeavesPartialRuns(t *testing.T) {
	b := mustParse(t, `
		. . . . . .
		. . . . . .
		. O X . . .
		. O . . . .
		. O . . . .
		. . . . . .`)

	// Only the rightward run is closed by a black stone; the run down the
	// b-column reaches an empty cell and stays white.
	ApplyPlacementAndFlip(&b, Black, 0, 2)

	if b.At(1, 2) != Black {
		t.Error("b3 should be flipped")
	}
	if b.At(1, 3) != White || b.At(1, 4) != White {
		t.Error("b4 and b5 are not bounded by black and must not flip")
	}
}

func TestApplyPlacementAndFlipContract(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"occupied", 2, 2},
		{"off board", 6, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if _, ok := r.(*ContractError); !ok {
					t.Errorf("recovered %v, want *ContractError", r)
				}
			}()
			b := StartingPosition()
			ApplyPlacementAndFlip(&b, Black, tc.x, tc.y)
		})
	}
}

func TestSimulateDoesNotMutate(t *testing.T) {
	b := StartingPosition()
	next := Simulate(b, Black, Move{2, 1})

	if b != StartingPosition() {
		t.Error("Simulate modified its argument")
	}
	if next == b {
		t.Error("Simulate should return a different board")
	}
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	b := StartingPosition()

	got, err := b.Play(Black, Move{0, 0})
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("Play(a1) error = %v, want ErrIllegalMove", err)
	}
	var ime *IllegalMoveError
	if !errors.As(err, &ime) || ime.Move != (Move{0, 0}) || ime.Stone != Black {
		t.Errorf("error = %#v, want IllegalMoveError for black a1", err)
	}
	if got != b {
		t.Error("rejected Play should return the original board")
	}

	got, err = b.Play(Black, Move{2, 1})
	if err != nil {
		t.Fatalf("Play(c2) error: %v", err)
	}
	if got != Simulate(b, Black, Move{2, 1}) {
		t.Error("Play should match Simulate for a legal move")
	}
}

// Legal exactly when the resolver would flip at least one stone
func TestLegalityMatchesResolver(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	boards := []Board{StartingPosition()}
	for i := 0; i < 200; i++ {
		boards = append(boards, randomBoard(rng), randomGame(rng, rng.Intn(30)))
	}

	for _, b := range boards {
		for _, s := range []Stone{Black, White} {
			for y := 0; y < Size; y++ {
				for x := 0; x < Size; x++ {
					legal := IsLegalPlacement(b, s, x, y)
					if b[y][x] != Empty {
						if legal {
							t.Fatalf("occupied (%d,%d) reported legal on\n%v", x, y, b)
						}
						continue
					}
					trial := b
					flips := ApplyPlacementAndFlip(&trial, s, x, y)
					if legal != (flips > 0) {
						t.Fatalf("%v at (%d,%d): legal=%v flips=%d on\n%v", s, x, y, legal, flips, b)
					}
				}
			}
		}
	}
}

// A placement adds one stone, flips at least one, and never empties a cell
func TestPlacementInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		b := randomGame(rng, rng.Intn(28))
		for _, s := range []Stone{Black, White} {
			for _, m := range LegalMoves(b, s) {
				next := Simulate(b, s, m)

				if next.Count(Empty) != b.Count(Empty)-1 {
					t.Fatalf("placement should fill exactly one cell")
				}
				if next.Count(s) < b.Count(s)+2 {
					t.Fatalf("placement should add one stone and flip at least one")
				}
				for y := 0; y < Size; y++ {
					for x := 0; x < Size; x++ {
						if b[y][x] == s && next[y][x] != s {
							t.Fatalf("own stone at (%d,%d) changed", x, y)
						}
					}
				}
				for _, p := range []Stone{Black, White} {
					if IsLegalPlacement(next, p, m.X, m.Y) {
						t.Fatalf("just-filled %v is legal for %v", m, p)
					}
				}
			}
		}
	}
}

func TestBlockedPlayerGameNotOver(t *testing.T) {
	b := mustParse(t, `
		O X . . . .
		. . . . . .
		. . . . . .
		. . . . . .
		. . . . . .
		. . . . . .`)

	if HasAnyLegalPlacement(b, Black) {
		t.Error("black should have no legal placement")
	}
	if !HasAnyLegalPlacement(b, White) {
		t.Error("white should be able to play c1")
	}
	if GameOver(b) {
		t.Error("game is not over while white can move")
	}
}

func TestGameOver(t *testing.T) {
	var full Board
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			full[y][x] = Stone(1 + (x+y)%2)
		}
	}

	onlyBlack := mustParse(t, `
		X . . . . .
		. . . . . .
		. . X . . .
		. . . . . .
		. . . . . .
		. . . . . X`)

	for name, b := range map[string]Board{"full": full, "one colour": onlyBlack, "empty": {}} {
		if !GameOver(b) {
			t.Errorf("%s: GameOver = false", name)
		}
	}
	if GameOver(StartingPosition()) {
		t.Error("starting position is not over")
	}
}

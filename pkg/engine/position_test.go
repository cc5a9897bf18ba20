package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestStartingPosition(t *testing.T) {
	b := StartingPosition()

	want := map[Move]Stone{
		{2, 2}: White, {3, 3}: White,
		{3, 2}: Black, {2, 3}: Black,
	}
	for m, s := range want {
		if got := b.At(m.X, m.Y); got != s {
			t.Errorf("At(%d,%d) = %v, want %v", m.X, m.Y, got, s)
		}
	}
	if b.Count(Black) != 2 || b.Count(White) != 2 {
		t.Errorf("counts = %d/%d, want 2/2", b.Count(Black), b.Count(White))
	}
	if b.Empties() != Size*Size-4 {
		t.Errorf("Empties = %d, want %d", b.Empties(), Size*Size-4)
	}
}

func TestOpponent(t *testing.T) {
	if Black.Opponent() != White || White.Opponent() != Black {
		t.Error("Black and White should be each other's opponent")
	}
	if Empty.Opponent() != Empty {
		t.Error("Empty should have no opponent")
	}
	if Stone(7).Opponent() != Empty {
		t.Error("out of range stone should have no opponent")
	}
}

func TestParseStone(t *testing.T) {
	tests := []struct {
		in   string
		want Stone
		err  bool
	}{
		{"1", Black, false},
		{"black", Black, false},
		{"X", Black, false},
		{"2", White, false},
		{" white ", White, false},
		{"o", White, false},
		{"0", Empty, true},
		{"red", Empty, true},
	}
	for _, tc := range tests {
		got, err := ParseStone(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalidStone) {
				t.Errorf("ParseStone(%q) error = %v, want ErrInvalidStone", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseStone(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestStoneFromCode(t *testing.T) {
	for code, want := range map[int]Stone{1: Black, 2: White} {
		got, err := StoneFromCode(code)
		if err != nil || got != want {
			t.Errorf("StoneFromCode(%d) = %v, %v", code, got, err)
		}
	}
	for _, code := range []int{-1, 0, 3, 258} {
		if _, err := StoneFromCode(code); !errors.Is(err, ErrInvalidStone) {
			t.Errorf("StoneFromCode(%d) error = %v, want ErrInvalidStone", code, err)
		}
	}
}

func TestMoveNotation(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Move{0, 0}, "a1"},
		{Move{2, 1}, "c2"},
		{Move{5, 5}, "f6"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.m, got, tc.want)
		}
		m, ok, err := ParseMove(tc.want)
		if err != nil || !ok || m != tc.m {
			t.Errorf("ParseMove(%q) = %v, %v, %v", tc.want, m, ok, err)
		}
	}

	if _, ok, err := ParseMove("pass"); ok || err != nil {
		t.Errorf("ParseMove(pass) = ok %v, err %v; want absent move", ok, err)
	}
	for _, bad := range []string{"", "g1", "a7", "a0", "c44", "zz"} {
		if _, _, err := ParseMove(bad); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", bad, err)
		}
	}
}

func TestRowsRoundTrip(t *testing.T) {
	b := StartingPosition()
	rows := b.Rows()

	if len(rows) != Size || len(rows[0]) != Size {
		t.Fatalf("Rows dimensions = %dx%d", len(rows), len(rows[0]))
	}
	if rows[2][3] != 1 || rows[2][2] != 2 {
		t.Errorf("rows[2] = %v, want black at x=3 and white at x=2", rows[2])
	}

	b2, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows error: %v", err)
	}
	if b2 != b {
		t.Error("FromRows(Rows()) should reproduce the board")
	}
}

func TestFromRowsRejects(t *testing.T) {
	good := StartingPosition().Rows()

	short := good[:5]
	narrow := StartingPosition().Rows()
	narrow[4] = narrow[4][:5]
	badCode := StartingPosition().Rows()
	badCode[0][0] = 3

	for name, rows := range map[string][][]int{
		"too few rows":   short,
		"short row":      narrow,
		"bad cell code":  badCode,
		"no rows at all": nil,
	} {
		if _, err := FromRows(rows); !errors.Is(err, ErrInvalidBoard) {
			t.Errorf("%s: error = %v, want ErrInvalidBoard", name, err)
		}
	}
}

func TestParseBoard(t *testing.T) {
	text := `
		. . . . . .
		. . . . . .
		. . O X . .
		. . X O . .
		. . . . . .
		. . . . . .
	`
	b, err := ParseBoard(text)
	if err != nil {
		t.Fatalf("ParseBoard error: %v", err)
	}
	if b != StartingPosition() {
		t.Errorf("ParseBoard mismatch:\n%v", b)
	}

	// String output parses back once the coordinate labels are removed
	var lines []string
	for _, line := range strings.Split(b.String(), "\n")[1:] {
		if len(line) > 2 {
			lines = append(lines, line[2:])
		}
	}
	b2, err := ParseBoard(strings.Join(lines, "\n"))
	if err != nil {
		t.Fatalf("ParseBoard(String()) error: %v", err)
	}
	if b2 != b {
		t.Error("String/ParseBoard round-trip failed")
	}
}

func TestParseBoardRejects(t *testing.T) {
	tests := map[string]string{
		"five rows":  "......\n......\n......\n......\n......",
		"short row":  "......\n.....\n......\n......\n......\n......",
		"long row":   "......\n.......\n......\n......\n......\n......",
		"bad symbol": "......\n..?...\n......\n......\n......\n......",
		"seven rows": "......\n......\n......\n......\n......\n......\n......",
	}
	for name, text := range tests {
		if _, err := ParseBoard(text); !errors.Is(err, ErrInvalidBoard) {
			t.Errorf("%s: error = %v, want ErrInvalidBoard", name, err)
		}
	}
}

func TestBoardIDRoundTrip(t *testing.T) {
	b := StartingPosition()
	id := BoardID(b)
	if id != "AAAAYAAJAAAA" {
		t.Errorf("BoardID(start) = %s", id)
	}

	b2, err := BoardFromID(id)
	if err != nil {
		t.Fatalf("BoardFromID error: %v", err)
	}
	if b2 != b {
		t.Error("BoardFromID(BoardID()) should reproduce the board")
	}

	if _, err := BoardFromID("not-an-id"); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("BoardFromID(bad) error = %v, want ErrInvalidBoard", err)
	}
}

package boardid

import (
	"errors"
	"testing"
)

// startingCells returns the centre cross used to open a 6x6 game
func startingCells() [Cells]uint8 {
	var cells [Cells]uint8
	cells[2*6+2] = 2 // (2,2) white
	cells[2*6+3] = 1 // (3,2) black
	cells[3*6+2] = 1 // (2,3) black
	cells[3*6+3] = 2 // (3,3) white
	return cells
}

const startingID = "AAAAYAAJAAAA"

func TestEncodeStartingPosition(t *testing.T) {
	id := Encode(startingCells())
	if id != startingID {
		t.Errorf("Encode = %s, want %s", id, startingID)
	}
	if len(id) != IDLength {
		t.Errorf("len(id) = %d, want %d", len(id), IDLength)
	}
}

func TestEncodeEmptyBoard(t *testing.T) {
	var cells [Cells]uint8
	if id := Encode(cells); id != "AAAAAAAAAAAA" {
		t.Errorf("Encode(empty) = %s", id)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	var cells [Cells]uint8
	for i := range cells {
		cells[i] = uint8(i % 3)
	}

	got := CellsFromKey(MakeKey(cells))
	if got != cells {
		t.Errorf("Key round-trip failed")
		t.Errorf("Original: %v", cells)
		t.Errorf("Result:   %v", got)
	}
}

func TestIDRoundTrip(t *testing.T) {
	boards := [][Cells]uint8{startingCells()}

	var full [Cells]uint8
	for i := range full {
		full[i] = uint8(1 + i%2)
	}
	boards = append(boards, full)

	for _, cells := range boards {
		id := Encode(cells)
		got, err := Decode(id)
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", id, err)
		}
		if got != cells {
			t.Errorf("ID round-trip failed for %s", id)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"too short", "AAAA"},
		{"too long", "AAAAAAAAAAAAA"},
		{"bad alphabet", "AAAA!AAJAAAA"},
		{"embedded newline", "AAAAYAA\nAAAA"},
		{"cell code 3", "AwAAAAAAAAAA"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.id)
			if err == nil {
				t.Fatalf("Decode(%q) succeeded, want error", tc.id)
			}
			if !errors.Is(err, ErrInvalidID) {
				t.Errorf("error %v does not wrap ErrInvalidID", err)
			}
			if Valid(tc.id) {
				t.Errorf("Valid(%q) = true", tc.id)
			}
		})
	}
}

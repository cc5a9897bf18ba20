// Package boardid implements compact board IDs for 6x6 reversi positions.
//
// A board ID packs the 36 cells at 2 bits each (0 = empty, 1 = black,
// 2 = white) into 9 bytes, least significant bits first, and renders them
// as 12 characters of standard base64 without padding. The ID says nothing
// about whose turn it is.
package boardid

import (
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// Cells is the number of cells encoded in an ID
	Cells = 36
	// IDLength is the length of a board ID string
	IDLength = 12
	// keyBytes is the number of packed bytes behind an ID
	keyBytes = Cells * 2 / 8
)

var (
	// ErrInvalidID is returned for IDs that cannot be decoded
	ErrInvalidID = errors.New("invalid board ID")

	encoding = base64.StdEncoding.WithPadding(base64.NoPadding)
)

// Key is the packed binary form of a board ID
type Key [keyBytes]uint8

// MakeKey packs cell codes into a key.
// Codes above 2 are masked to their low 2 bits, so callers should validate first.
func MakeKey(cells [Cells]uint8) Key {
	var key Key
	for i, c := range cells {
		key[i/4] |= (c & 0x3) << (uint(i%4) * 2)
	}
	return key
}

// CellsFromKey unpacks a key into cell codes
func CellsFromKey(key Key) [Cells]uint8 {
	var cells [Cells]uint8
	for i := range cells {
		cells[i] = (key[i/4] >> (uint(i%4) * 2)) & 0x3
	}
	return cells
}

// Encode returns the board ID for the given cells (row-major, y then x)
func Encode(cells [Cells]uint8) string {
	key := MakeKey(cells)
	return encoding.EncodeToString(key[:])
}

// Decode parses a board ID back into cell codes
func Decode(id string) ([Cells]uint8, error) {
	var cells [Cells]uint8

	if len(id) != IDLength {
		return cells, fmt.Errorf("%w: length %d, want %d", ErrInvalidID, len(id), IDLength)
	}

	raw, err := encoding.DecodeString(id)
	if err != nil {
		return cells, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if len(raw) != keyBytes {
		return cells, fmt.Errorf("%w: decoded %d bytes, want %d", ErrInvalidID, len(raw), keyBytes)
	}

	var key Key
	copy(key[:], raw)
	cells = CellsFromKey(key)

	for i, c := range cells {
		if c > 2 {
			return cells, fmt.Errorf("%w: cell %d has code %d", ErrInvalidID, i, c)
		}
	}

	return cells, nil
}

// Valid reports whether id decodes to a board
func Valid(id string) bool {
	_, err := Decode(id)
	return err == nil
}

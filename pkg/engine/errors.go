package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidStone = errors.New("invalid stone")
	ErrInvalidDepth = errors.New("invalid search depth")
	ErrInvalidMove  = errors.New("invalid move notation")
	ErrIllegalMove  = errors.New("illegal move")
)

// ContractError is the panic value raised when a caller breaks a
// precondition of the capture resolver. It signals a programming error and
// is never returned as an error value.
type ContractError struct {
	Op     string
	Stone  Stone
	X, Y   int
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("engine: %s(%v, %d, %d): %s", e.Op, e.Stone, e.X, e.Y, e.Reason)
}

// IllegalMoveError describes a rejected placement. It matches ErrIllegalMove
// under errors.Is.
type IllegalMoveError struct {
	Stone Stone
	Move  Move
}

func (e *IllegalMoveError) Error() string {
	return "illegal move: " + e.Stone.String() + " cannot play " + e.Move.String()
}

// Is lets errors.Is(err, ErrIllegalMove) match
func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

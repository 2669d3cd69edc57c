// Package game implements move selection for Tic-Tac-Toe on 3x3 and 5x5
// boards.
package game

import (
	"math"
	"slices"
	"strings"
)

// Symbol represents the content of a cell.
type Symbol uint8

const (
	Empty Symbol = iota
	PlayerX
	PlayerO
)

// String returns the string representation of the symbol.
func (s Symbol) String() string {
	switch s {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the opponent of the symbol.
func (s Symbol) Opponent() Symbol {
	switch s {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// IsValid returns true if s is one of the three known symbols.
func (s Symbol) IsValid() bool {
	return s <= PlayerO
}

// SymbolToMove returns the symbol that is about to move given the number of
// empty cells on the board, along with its opponent.
//
// X always moves first and the board is assumed to be in an "about to move"
// state, so an odd number of empty cells means it is X's turn and an even
// number means it is O's turn.
func SymbolToMove(emptyCount int) (self, opponent Symbol) {
	if emptyCount%2 == 1 {
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}

// Position is an index into a board, counted row by row from the top-left
// cell.
type Position int

// RowCol returns the row and column of the position on a board with the
// given side length.
func (p Position) RowCol(side int) (row, col int) {
	return int(p) / side, int(p) % side
}

// PositionAt returns the position at the given row and column on a board with
// the given side length.
func PositionAt(row, col, side int) Position {
	return Position(row*side + col)
}

// Side returns the side length of a square board with the given number of
// cells.
func Side(length int) int {
	return int(math.Sqrt(float64(length)))
}

// Board is a square board stored row by row.
type Board []Symbol

// BoardFromInts converts the wire encoding (0 empty, 1 X, 2 O) into a board.
// Values are not validated.
func BoardFromInts(cells []int) Board {
	b := make(Board, len(cells))
	for i, c := range cells {
		b[i] = Symbol(c)
	}
	return b
}

// At returns the symbol at the given position. Positions outside of the board
// are reported as empty.
func (b Board) At(p Position) Symbol {
	if p < 0 || int(p) >= len(b) {
		return Empty
	}
	return b[p]
}

// Clone returns a copy of the board.
func (b Board) Clone() Board {
	return slices.Clone(b)
}

// EmptyPositions returns all empty positions in ascending order.
func (b Board) EmptyPositions() []Position {
	empty := make([]Position, 0, len(b))
	for i, s := range b {
		if s == Empty {
			empty = append(empty, Position(i))
		}
	}
	return empty
}

func (b Board) String() string {
	side := Side(len(b))
	if side == 0 {
		return "[]"
	}

	var s strings.Builder
	s.WriteByte('[')
	for r := range side {
		if r > 0 {
			s.WriteByte(' ')
		}

		s.WriteByte('[')
		for c := range side {
			if c > 0 {
				s.WriteByte(' ')
			}
			s.WriteString(b.At(PositionAt(r, c, side)).String())
		}
		s.WriteByte(']')

		if r < side-1 {
			s.WriteString("\n")
		} else {
			s.WriteByte(']')
		}
	}
	return s.String()
}

// Line is a set of three positions that wins the game when all of them hold
// the same symbol.
type Line [3]Position

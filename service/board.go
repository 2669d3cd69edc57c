package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/twipi/tateti/game"
)

// Board validation errors. Each one maps to a client error on every surface.
var (
	ErrBoardRequired     = errors.New("board is required")
	ErrBoardNotArray     = errors.New("board is not an array")
	ErrBoardSize         = errors.New("board must have 9 or 25 positions")
	ErrBoardValues       = errors.New("board contains invalid values")
	ErrNoEmptyPositions  = errors.New("no empty positions available")
	ErrInvalidBoardParam = errors.New("invalid board parameter")
	ErrInvalidBody       = errors.New("invalid request body")
)

// errorMessage returns the client-facing message for a validation error.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrBoardRequired):
		return "Board parameter is required"
	case errors.Is(err, ErrBoardNotArray):
		return "Board must be an array"
	case errors.Is(err, ErrBoardSize):
		return "Board must be 9 or 25 positions"
	case errors.Is(err, ErrBoardValues):
		return "Board contains invalid values"
	case errors.Is(err, ErrNoEmptyPositions):
		return "No empty positions available"
	case errors.Is(err, ErrInvalidBoardParam):
		return "Invalid board parameter. Must be a JSON array."
	case errors.Is(err, ErrInvalidBody):
		return "Invalid JSON body"
	default:
		return "Internal server error"
	}
}

// isClientError returns true if err is caused by a bad board.
func isClientError(err error) bool {
	for _, target := range []error{
		ErrBoardRequired,
		ErrBoardNotArray,
		ErrBoardSize,
		ErrBoardValues,
		ErrNoEmptyPositions,
		ErrInvalidBoardParam,
		ErrInvalidBody,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ParseBoard validates a JSON encoded board. A missing, null, false, zero or
// empty string board counts as absent.
func ParseBoard(raw json.RawMessage) (game.Board, error) {
	if len(raw) == 0 {
		return nil, ErrBoardRequired
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoardNotArray, err)
	}
	return validateBoard(v)
}

// ParseBoardParam validates a board passed as a JSON encoded query parameter.
func ParseBoardParam(param string) (game.Board, error) {
	var v any
	if err := json.Unmarshal([]byte(param), &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoardParam, err)
	}
	return validateBoard(v)
}

func validateBoard(v any) (game.Board, error) {
	switch v := v.(type) {
	case nil:
		return nil, ErrBoardRequired
	case bool:
		if !v {
			return nil, ErrBoardRequired
		}
	case float64:
		if v == 0 {
			return nil, ErrBoardRequired
		}
	case string:
		if v == "" {
			return nil, ErrBoardRequired
		}
	}

	cells, ok := v.([]any)
	if !ok {
		return nil, ErrBoardNotArray
	}

	if _, ok := game.ConfigFor(len(cells)); !ok {
		return nil, fmt.Errorf("%w: got %d", ErrBoardSize, len(cells))
	}

	board := make(game.Board, len(cells))
	for i, cell := range cells {
		n, ok := cell.(float64)
		if !ok || (n != 0 && n != 1 && n != 2) {
			return nil, fmt.Errorf("%w: %v at position %d", ErrBoardValues, cell, i)
		}
		board[i] = game.Symbol(n)
	}

	if len(board.EmptyPositions()) == 0 {
		return nil, ErrNoEmptyPositions
	}

	return board, nil
}

// ParseCompactBoard parses a board written as a string of 0, 1 and 2 digits,
// ignoring any other character. It is meant for human input.
func ParseCompactBoard(s string) (game.Board, error) {
	board := make(game.Board, 0, len(s))
	for _, r := range s {
		switch r {
		case '0', '1', '2':
			board = append(board, game.Symbol(r-'0'))
		case '.', '_', '-':
			board = append(board, game.Empty)
		case 'x', 'X':
			board = append(board, game.PlayerX)
		case 'o', 'O':
			board = append(board, game.PlayerO)
		}
	}
	if len(board) == 0 {
		return nil, ErrBoardRequired
	}
	if _, ok := game.ConfigFor(len(board)); !ok {
		return nil, fmt.Errorf("%w: got %d", ErrBoardSize, len(board))
	}
	if len(board.EmptyPositions()) == 0 {
		return nil, ErrNoEmptyPositions
	}
	return board, nil
}

// formatCompactBoard is the inverse of [ParseCompactBoard].
func formatCompactBoard(b game.Board) string {
	var s strings.Builder
	s.Grow(len(b))
	for _, cell := range b {
		s.WriteByte('0' + byte(cell))
	}
	return s.String()
}

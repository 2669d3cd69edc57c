package game

import (
	"slices"
	"testing"
)

func TestWouldWin(t *testing.T) {
	board := BoardFromInts([]int{1, 1, 0, 2, 2, 0, 0, 0, 0})
	before := board.Clone()

	if !WouldWin(board, 2, PlayerX, ThreeByThree.Lines) {
		t.Error("X at 2 should win")
	}
	if WouldWin(board, 5, PlayerX, ThreeByThree.Lines) {
		t.Error("X at 5 should not win")
	}
	if !WouldWin(board, 5, PlayerO, ThreeByThree.Lines) {
		t.Error("O at 5 should win")
	}
	if !slices.Equal(board, before) {
		t.Errorf("board was modified:\n%s", board)
	}

	if WouldWin(nil, 4, PlayerX, ThreeByThree.Lines) {
		t.Error("nil board should never win")
	}
}

func TestFindImmediateWin(t *testing.T) {
	tests := []struct {
		name   string
		board  []int
		empty  []Position
		symbol Symbol
		want   Position
		found  bool
	}{
		{
			name:   "row",
			board:  []int{1, 1, 0, 0, 0, 0, 0, 0, 0},
			symbol: PlayerX,
			want:   2,
			found:  true,
		},
		{
			name:   "diagonal",
			board:  []int{2, 0, 0, 0, 2, 0, 0, 0, 0},
			symbol: PlayerO,
			want:   8,
			found:  true,
		},
		{
			name:   "follows empty order",
			board:  []int{1, 1, 0, 1, 0, 0, 0, 0, 0},
			empty:  []Position{6, 2},
			symbol: PlayerX,
			want:   6,
			found:  true,
		},
		{
			name:   "none",
			board:  []int{1, 2, 0, 0, 0, 0, 0, 0, 0},
			symbol: PlayerX,
		},
		{
			name:   "no empty positions",
			board:  []int{1, 1, 0, 0, 0, 0, 0, 0, 0},
			empty:  []Position{},
			symbol: PlayerX,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := BoardFromInts(test.board)
			empty := test.empty
			if empty == nil {
				empty = board.EmptyPositions()
			}

			p, ok := FindImmediateWin(board, empty, test.symbol, ThreeByThree.Lines)
			if ok != test.found || (ok && p != test.want) {
				t.Errorf("expected (%d, %v), got (%d, %v)", test.want, test.found, p, ok)
			}
		})
	}
}

func TestFindImmediateBlock(t *testing.T) {
	board := BoardFromInts([]int{2, 2, 0, 1, 0, 0, 0, 0, 0})
	p, ok := FindImmediateBlock(board, board.EmptyPositions(), PlayerO, ThreeByThree.Lines)
	if !ok || p != 2 {
		t.Errorf("expected block at 2, got (%d, %v)", p, ok)
	}
}

func TestFindStrategicCompletion(t *testing.T) {
	tests := []struct {
		name   string
		board  []int
		empty  []Position
		symbol Symbol
		want   Position
		found  bool
	}{
		{
			name:   "first declared line wins ties",
			board:  []int{0, 0, 0, 1, 1, 0, 1, 0, 0},
			symbol: PlayerX,
			want:   5,
			found:  true,
		},
		{
			name:   "third cell taken by opponent",
			board:  []int{1, 1, 2, 0, 0, 0, 0, 0, 0},
			symbol: PlayerX,
		},
		{
			name:   "third cell not offered",
			board:  []int{1, 1, 0, 0, 0, 0, 0, 0, 0},
			empty:  []Position{3, 4},
			symbol: PlayerX,
		},
		{
			name:   "single stone",
			board:  []int{0, 0, 0, 0, 2, 0, 0, 0, 0},
			symbol: PlayerO,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := BoardFromInts(test.board)
			empty := test.empty
			if empty == nil {
				empty = board.EmptyPositions()
			}

			p, ok := FindStrategicCompletion(board, empty, test.symbol, ThreeByThree.Lines)
			if ok != test.found || (ok && p != test.want) {
				t.Errorf("expected (%d, %v), got (%d, %v)", test.want, test.found, p, ok)
			}
		})
	}
}

func TestOpponentPositions(t *testing.T) {
	board := BoardFromInts([]int{2, 1, 0, 0, 2, 1, 0, 0, 2})
	if got := OpponentPositions(board, PlayerO); !slices.Equal(got, []Position{0, 4, 8}) {
		t.Errorf("expected [0 4 8], got %v", got)
	}
	if got := OpponentPositions(board, PlayerX); !slices.Equal(got, []Position{1, 5}) {
		t.Errorf("expected [1 5], got %v", got)
	}
	if got := OpponentPositions(nil, PlayerX); len(got) != 0 {
		t.Errorf("expected nothing on a nil board, got %v", got)
	}
}

func TestHasWon(t *testing.T) {
	tests := []struct {
		name   string
		board  []int
		lines  []Line
		winner Symbol
	}{
		{"3x3 column", []int{1, 2, 0, 1, 2, 0, 1, 0, 0}, ThreeByThree.Lines, PlayerX},
		{"3x3 anti-diagonal", []int{1, 1, 2, 0, 2, 1, 2, 0, 0}, ThreeByThree.Lines, PlayerO},
		{"3x3 none", []int{1, 2, 1, 1, 2, 2, 2, 1, 1}, ThreeByThree.Lines, Empty},
		{"5x5 three in a row", append([]int{0, 1, 1, 1}, make([]int, 21)...), FiveByFive.Lines, PlayerX},
		{"5x5 minor diagonal", []int{
			0, 0, 0, 0, 0,
			2, 0, 0, 0, 0,
			0, 2, 0, 0, 0,
			0, 0, 2, 0, 0,
			0, 0, 0, 0, 0,
		}, FiveByFive.Lines, PlayerO},
		{"5x5 broken run", append([]int{1, 1, 0, 1}, make([]int, 21)...), FiveByFive.Lines, Empty},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := BoardFromInts(test.board)
			for _, s := range []Symbol{PlayerX, PlayerO} {
				if won := HasWon(board, s, test.lines); won != (s == test.winner) {
					t.Errorf("HasWon(%v) = %v\n%s", s, won, board)
				}
			}
			if w := Winner(board, test.lines); w != test.winner {
				t.Errorf("expected winner %q, got %q", test.winner, w)
			}
		})
	}
}

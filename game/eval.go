package game

import "slices"

// WouldWin returns true if placing s at p completes any of the given lines.
// The board is not modified.
func WouldWin(board Board, p Position, s Symbol, lines []Line) bool {
	test := board.Clone()
	if p >= 0 && int(p) < len(test) {
		test[p] = s
	}
	return HasWon(test, s, lines)
}

// FindImmediateWin returns the first position in empty, in order, where s
// would complete a line.
func FindImmediateWin(board Board, empty []Position, s Symbol, lines []Line) (Position, bool) {
	for _, p := range empty {
		if WouldWin(board, p, s, lines) {
			return p, true
		}
	}
	return 0, false
}

// FindImmediateBlock returns the first position in empty where the opponent
// would complete a line. Blocking is winning probed with the other symbol.
func FindImmediateBlock(board Board, empty []Position, opponent Symbol, lines []Line) (Position, bool) {
	return FindImmediateWin(board, empty, opponent, lines)
}

// FindStrategicCompletion returns the missing cell of the first line, in
// declaration order, that holds exactly two s and one empty cell that is
// also listed in empty.
func FindStrategicCompletion(board Board, empty []Position, s Symbol, lines []Line) (Position, bool) {
	for _, line := range lines {
		var owned int
		for _, p := range line {
			if board.At(p) == s {
				owned++
			}
		}
		if owned != 2 {
			continue
		}

		i := slices.IndexFunc(line[:], func(p Position) bool { return board.At(p) == Empty })
		if i != -1 && slices.Contains(empty, line[i]) {
			return line[i], true
		}
	}
	return 0, false
}

// OpponentPositions returns every position holding s in ascending order.
func OpponentPositions(board Board, s Symbol) []Position {
	var positions []Position
	for i, cell := range board {
		if cell == s {
			positions = append(positions, Position(i))
		}
	}
	return positions
}

// HasWon returns true if s fully occupies any of the lines.
func HasWon(board Board, s Symbol, lines []Line) bool {
	for _, line := range lines {
		if board.At(line[0]) == s && board.At(line[1]) == s && board.At(line[2]) == s {
			return true
		}
	}
	return false
}

// Winner returns the symbol that occupies a full line, or Empty if there is
// none. If both players hold a line, X is reported.
func Winner(board Board, lines []Line) Symbol {
	for _, s := range []Symbol{PlayerX, PlayerO} {
		if HasWon(board, s, lines) {
			return s
		}
	}
	return Empty
}

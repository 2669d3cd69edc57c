package game

import "slices"

// SelectPositionalMove picks the center if it is free, otherwise the
// lowest-indexed free corner, then the lowest-indexed free edge, then the
// first empty position. It returns false only if empty is empty.
func SelectPositionalMove(empty []Position, cfg *Config) (Position, bool) {
	if slices.Contains(empty, cfg.Center) {
		return cfg.Center, true
	}
	if p, ok := firstAvailable(cfg.Corners, empty); ok {
		return p, true
	}
	if p, ok := firstAvailable(cfg.Edges, empty); ok {
		return p, true
	}
	if len(empty) > 0 {
		return empty[0], true
	}
	return 0, false
}

// RespondToOpponentAt answers a single opponent stone at opp depending on
// where it sits: a corner is answered with the opposite corner, the center
// with any corner, and an edge by taking a cell in its row or column.
func RespondToOpponentAt(opp Position, empty []Position, cfg *Config) (Position, bool) {
	switch {
	case cfg.IsCorner(opp):
		return RespondToCorner(opp, empty, cfg)
	case cfg.IsCenter(opp):
		return RespondToCenter(empty, cfg)
	case cfg.IsEdge(opp):
		return RespondToEdge(opp, empty, cfg)
	default:
		return 0, false
	}
}

// RespondToCorner returns the corner diagonally opposite to opp if it is
// free.
func RespondToCorner(opp Position, empty []Position, cfg *Config) (Position, bool) {
	opposite, ok := cfg.DiagonalOpposites[opp]
	if !ok || !slices.Contains(empty, opposite) {
		return 0, false
	}
	return opposite, true
}

// RespondToCenter returns the lowest-indexed free corner.
func RespondToCenter(empty []Position, cfg *Config) (Position, bool) {
	return firstAvailable(cfg.Corners, empty)
}

// RespondToEdge returns the first free cell sharing a row with opp, scanning
// left to right, or failing that the first free cell sharing its column,
// scanning top to bottom.
func RespondToEdge(opp Position, empty []Position, cfg *Config) (Position, bool) {
	if !cfg.IsEdge(opp) {
		return 0, false
	}

	row, col := opp.RowCol(cfg.Side)
	for c := range cfg.Side {
		p := PositionAt(row, c, cfg.Side)
		if p != opp && slices.Contains(empty, p) {
			return p, true
		}
	}
	for r := range cfg.Side {
		p := PositionAt(r, col, cfg.Side)
		if p != opp && slices.Contains(empty, p) {
			return p, true
		}
	}
	return 0, false
}

func firstAvailable(candidates, empty []Position) (Position, bool) {
	for _, p := range candidates {
		if slices.Contains(empty, p) {
			return p, true
		}
	}
	return 0, false
}

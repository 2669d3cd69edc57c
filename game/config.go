package game

import "slices"

// Config describes the geometry of a supported board size.
// Configs are shared by every selector and must not be modified.
type Config struct {
	// Size is the total number of cells.
	Size int
	// Side is the number of cells in a row or column.
	Side    int
	Center  Position
	Corners []Position
	// Edges holds every position that is neither a corner nor the center.
	Edges []Position
	// Lines lists the winning lines in a fixed order. Strategic completion
	// breaks ties by this order.
	Lines []Line
	// DiagonalOpposites maps every corner to the corner across the center.
	DiagonalOpposites map[Position]Position
}

// ThreeByThree is the classic 3x3 board with its 8 full-length lines.
var ThreeByThree = &Config{
	Size:    9,
	Side:    3,
	Center:  4,
	Corners: []Position{0, 2, 6, 8},
	Edges:   []Position{1, 3, 5, 7},
	Lines: []Line{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
		{0, 4, 8}, {2, 4, 6}, // diagonals
	},
	DiagonalOpposites: map[Position]Position{
		0: 8, 2: 6, 6: 2, 8: 0,
	},
}

// FiveByFive is the 5x5 board. A game on it is still won with three in a
// row, so every line is a run of three cells rather than a full row.
var FiveByFive = &Config{
	Size:    25,
	Side:    5,
	Center:  12,
	Corners: []Position{0, 4, 20, 24},
	Edges: []Position{
		1, 2, 3, 5, 6, 7, 8, 9, 10, 11,
		13, 14, 15, 16, 17, 18, 19, 21, 22, 23,
	},
	Lines: []Line{
		// rows
		{0, 1, 2}, {1, 2, 3}, {2, 3, 4},
		{5, 6, 7}, {6, 7, 8}, {7, 8, 9},
		{10, 11, 12}, {11, 12, 13}, {12, 13, 14},
		{15, 16, 17}, {16, 17, 18}, {17, 18, 19},
		{20, 21, 22}, {21, 22, 23}, {22, 23, 24},

		// columns
		{0, 5, 10}, {5, 10, 15}, {10, 15, 20},
		{1, 6, 11}, {6, 11, 16}, {11, 16, 21},
		{2, 7, 12}, {7, 12, 17}, {12, 17, 22},
		{3, 8, 13}, {8, 13, 18}, {13, 18, 23},
		{4, 9, 14}, {9, 14, 19}, {14, 19, 24},

		// main diagonals
		{0, 6, 12}, {6, 12, 18}, {12, 18, 24},
		{4, 8, 12}, {8, 12, 16}, {12, 16, 20},

		// minor diagonals
		{2, 8, 14}, {1, 7, 13}, {7, 13, 19},
		{3, 7, 11}, {7, 11, 15}, {5, 11, 17}, {11, 17, 23},
	},
	DiagonalOpposites: map[Position]Position{
		0: 24, 4: 20, 20: 4, 24: 0,
	},
}

// ConfigFor returns the config for a board with the given number of cells.
func ConfigFor(length int) (*Config, bool) {
	switch length {
	case ThreeByThree.Size:
		return ThreeByThree, true
	case FiveByFive.Size:
		return FiveByFive, true
	default:
		return nil, false
	}
}

// IsCenter returns true if p is the center of the board.
func (c *Config) IsCenter(p Position) bool {
	return p == c.Center
}

// IsCorner returns true if p is one of the four corners.
func (c *Config) IsCorner(p Position) bool {
	return slices.Contains(c.Corners, p)
}

// IsEdge returns true if p is neither a corner nor the center.
func (c *Config) IsEdge(p Position) bool {
	return slices.Contains(c.Edges, p)
}

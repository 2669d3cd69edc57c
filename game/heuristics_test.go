package game

import (
	"fmt"
	"slices"
	"testing"
)

// allBut returns every position of the config except the given ones.
func allBut(cfg *Config, taken ...Position) []Position {
	var empty []Position
	for p := range Position(cfg.Size) {
		if !slices.Contains(taken, p) {
			empty = append(empty, p)
		}
	}
	return empty
}

func TestSelectPositionalMove(t *testing.T) {
	tests := []struct {
		config *Config
		empty  []Position
		want   Position
		found  bool
	}{
		{ThreeByThree, allBut(ThreeByThree), 4, true},
		{ThreeByThree, allBut(ThreeByThree, 4), 0, true},
		{ThreeByThree, allBut(ThreeByThree, 4, 0), 2, true},
		{ThreeByThree, []Position{7, 3, 5}, 3, true},
		{ThreeByThree, []Position{9}, 9, true},
		{ThreeByThree, nil, 0, false},
		{FiveByFive, allBut(FiveByFive), 12, true},
		{FiveByFive, allBut(FiveByFive, 12, 0, 4), 20, true},
		{FiveByFive, []Position{23, 1}, 1, true},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.empty), func(t *testing.T) {
			p, ok := SelectPositionalMove(test.empty, test.config)
			if ok != test.found || p != test.want {
				t.Errorf("expected (%d, %v), got (%d, %v)", test.want, test.found, p, ok)
			}
		})
	}
}

func TestRespondToOpponentAt(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		opp    Position
		empty  []Position
		want   Position
		found  bool
	}{
		{"3x3 corner", ThreeByThree, 0, allBut(ThreeByThree, 0), 8, true},
		{"3x3 corner reversed", ThreeByThree, 6, allBut(ThreeByThree, 6), 2, true},
		{"3x3 corner blocked", ThreeByThree, 0, allBut(ThreeByThree, 0, 8), 0, false},
		{"3x3 center", ThreeByThree, 4, allBut(ThreeByThree, 4, 0), 2, true},
		{"3x3 center no corners", ThreeByThree, 4, []Position{1, 3}, 0, false},
		{"3x3 top edge takes row", ThreeByThree, 1, allBut(ThreeByThree, 1), 0, true},
		{"3x3 left edge full row takes column", ThreeByThree, 3, allBut(ThreeByThree, 3, 4, 5), 0, true},
		{"3x3 edge falls back to column", ThreeByThree, 3, []Position{6, 8}, 6, true},
		{"3x3 edge column only", ThreeByThree, 1, []Position{7, 8}, 7, true},
		{"3x3 edge nothing shared", ThreeByThree, 1, []Position{3, 5}, 0, false},
		{"3x3 off board", ThreeByThree, 9, allBut(ThreeByThree), 0, false},
		{"5x5 corner", FiveByFive, 4, allBut(FiveByFive, 4), 20, true},
		{"5x5 center", FiveByFive, 12, allBut(FiveByFive, 12), 0, true},
		{"5x5 edge row before column", FiveByFive, 9, allBut(FiveByFive, 9), 5, true},
		{"5x5 edge column", FiveByFive, 21, []Position{1, 6, 11, 16, 12}, 1, true},
		{"5x5 edge only center left", FiveByFive, 1, []Position{12}, 0, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, ok := RespondToOpponentAt(test.opp, test.empty, test.config)
			if ok != test.found || (ok && p != test.want) {
				t.Errorf("expected (%d, %v), got (%d, %v)", test.want, test.found, p, ok)
			}
		})
	}
}

func TestRespondHelpersRejectWrongCategory(t *testing.T) {
	empty := allBut(ThreeByThree)
	if _, ok := RespondToCorner(1, empty, ThreeByThree); ok {
		t.Error("edge should not be answered as a corner")
	}
	if _, ok := RespondToEdge(0, empty, ThreeByThree); ok {
		t.Error("corner should not be answered as an edge")
	}
	if _, ok := RespondToEdge(4, empty, ThreeByThree); ok {
		t.Error("center should not be answered as an edge")
	}
}

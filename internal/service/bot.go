package service

import (
	"math/bits"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// AutoPlayer picks moves by fixed priority: win, block, center, first open cell.
// It holds no game state and can be shared between grids and goroutines.
// There is no lookahead, so a fork by the opponent can still beat it.
type AutoPlayer struct {
	lines [len(entity.Lines)]uint16
}

func NewAutoPlayer() *AutoPlayer {
	return &AutoPlayer{
		lines: entity.LineMasks,
	}
}

// PlayOnGrid - commits exactly one move for own on grid and returns the chosen cell.
// Nothing is played on a full grid. The grid places its next marker, so callers
// invoke this only when it is own's turn.
func (that *AutoPlayer) PlayOnGrid(grid *entity.Grid, own, opponent string) (entity.Position, bool) {
	pos, ok := that.ChooseMove(grid, own, opponent)
	if !ok {
		return 0, false
	}

	if _, placed := grid.PlayAt(pos); !placed {
		return 0, false
	}

	return pos, true
}

// ChooseMove - selects the cell PlayOnGrid would play without touching the grid.
func (that *AutoPlayer) ChooseMove(grid *entity.Grid, own, opponent string) (entity.Position, bool) {
	open := grid.OpenMask()
	if open == 0 {
		return 0, false
	}

	if candidates := that.completions(grid.Mask(own), open); candidates != 0 {
		return lowest(candidates), true
	}

	if candidates := that.completions(grid.Mask(opponent), open); candidates != 0 {
		return lowest(candidates), true
	}

	// the opening move skips the center so the first scan lands on a corner
	if !grid.IsEmpty() && open&entity.Center.Mask() != 0 {
		return entity.Center, true
	}

	return lowest(open), true
}

// completions returns every open cell that finishes a line where held owns two of three.
func (that *AutoPlayer) completions(held, open uint16) uint16 {
	var candidates uint16

	for _, line := range that.lines {
		if bits.OnesCount16(held&line) == 2 {
			candidates |= line &^ held & open
		}
	}

	return candidates
}

func lowest(mask uint16) entity.Position {
	return entity.Position(bits.TrailingZeros16(mask))
}

package entity

import (
	"errors"
	"fmt"
)

// Position is one of the nine cells of the grid, numbered row by row from the top left.
type Position int

const (
	TopLeft Position = iota
	TopMiddle
	TopRight
	MiddleLeft
	Center
	MiddleRight
	BottomLeft
	BottomMiddle
	BottomRight
)

const BoardSize = 9

var ErrUnknownPosition = errors.New("unknown position")

var (
	positionLabels = [BoardSize]string{
		"top_left",
		"top_middle",
		"top_right",
		"middle_left",
		"center",
		"middle_right",
		"bottom_left",
		"bottom_middle",
		"bottom_right",
	}

	// AllPositions lists every cell in index order.
	AllPositions = []Position{
		TopLeft, TopMiddle, TopRight,
		MiddleLeft, Center, MiddleRight,
		BottomLeft, BottomMiddle, BottomRight,
	}
)

// ParsePosition - maps a cell label such as "top_left" to its Position.
func ParsePosition(label string) (Position, error) {
	for i, known := range positionLabels {
		if known == label {
			return Position(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPosition, label)
}

// PositionAt - maps an index in [0,8] to its Position.
func PositionAt(index int) (Position, error) {
	pos := Position(index)
	if !pos.IsValid() {
		return 0, fmt.Errorf("%w: index %d", ErrUnknownPosition, index)
	}

	return pos, nil
}

func (that Position) IsValid() bool {
	return that >= TopLeft && that <= BottomRight
}

// Mask returns the single bit of the cell in a 9-bit board mask.
func (that Position) Mask() uint16 {
	if !that.IsValid() {
		return 0
	}
	return 1 << uint(that)
}

func (that Position) String() string {
	if !that.IsValid() {
		return fmt.Sprintf("Position(%d)", int(that))
	}
	return positionLabels[that]
}

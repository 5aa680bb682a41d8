package entity

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	DefaultMarkers = "XO"

	// EmptyCell is the character rendered for an unoccupied cell.
	EmptyCell = " "

	// the first mover places a third marker on the fifth move at the earliest
	minMovesToWin = 5

	fullMask uint16 = 1<<BoardSize - 1

	markerCount = 2
)

// slot values: 0 is empty, 1 and 2 are markers[0] and markers[1]
const emptySlot uint8 = 0

// Grid is the state of one game. Markers alternate starting with the first one;
// Play and PlayAt are the only mutators. A Grid is not safe for concurrent use.
type Grid struct {
	markers [markerCount]string
	slots   [BoardSize]uint8
	masks   [markerCount]uint16
	moves   int
}

// NewGrid - creates an empty grid for the given pair of markers.
// Each marker must be a single visible character and the two must differ.
func NewGrid(first, second string) (*Grid, error) {
	if err := validateMarkers(first, second); err != nil {
		return nil, err
	}

	return &Grid{markers: [markerCount]string{first, second}}, nil
}

// NewGridFromPair - creates a grid from a two character string such as "XO".
func NewGridFromPair(pair string) (*Grid, error) {
	if utf8.RuneCountInString(pair) != markerCount {
		return nil, fmt.Errorf("%w: %q must hold exactly two markers", apperror.ErrInvalidMarkers, pair)
	}

	runes := []rune(pair)

	return NewGrid(string(runes[0]), string(runes[1]))
}

// NewDefaultGrid - creates a grid with the "X" and "O" markers.
func NewDefaultGrid() *Grid {
	grid, err := NewGridFromPair(DefaultMarkers)
	if err != nil {
		panic(fmt.Errorf("default markers rejected: %w", err))
	}

	return grid
}

func validateMarkers(first, second string) error {
	for _, marker := range []string{first, second} {
		if utf8.RuneCountInString(marker) != 1 {
			return fmt.Errorf("%w: %q is not a single character", apperror.ErrInvalidMarkers, marker)
		}

		r, _ := utf8.DecodeRuneInString(marker)
		if r == utf8.RuneError || unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("%w: %q is not printable", apperror.ErrInvalidMarkers, marker)
		}
	}

	if first == second {
		return fmt.Errorf("%w: both players use %q", apperror.ErrInvalidMarkers, first)
	}

	return nil
}

func (that *Grid) IsEmpty() bool {
	return that.moves == 0
}

func (that *Grid) IsFull() bool {
	return that.moves == BoardSize
}

// Play - places the next marker on the cell with the given label.
// Unknown labels and occupied cells are rejected without changing the grid.
func (that *Grid) Play(label string) (string, bool) {
	pos, err := ParsePosition(label)
	if err != nil {
		return "", false
	}

	return that.PlayAt(pos)
}

// PlayAt - places the next marker on pos and returns it.
func (that *Grid) PlayAt(pos Position) (string, bool) {
	if !pos.IsValid() || that.slots[pos] != emptySlot {
		return "", false
	}

	turn := that.moves % len(that.markers)

	that.slots[pos] = uint8(turn) + 1
	that.masks[turn] |= pos.Mask()
	that.moves++

	return that.markers[turn], true
}

// MarkerAt returns the marker occupying pos, if any.
func (that *Grid) MarkerAt(pos Position) (string, bool) {
	if !pos.IsValid() || that.slots[pos] == emptySlot {
		return "", false
	}

	return that.markers[that.slots[pos]-1], true
}

// Cells - returns the 9 character board, one character per position in index order.
func (that *Grid) Cells() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, pos := range AllPositions {
		marker, ok := that.MarkerAt(pos)
		if !ok {
			marker = EmptyCell
		}
		sb.WriteString(marker)
	}

	return sb.String()
}

func (that *Grid) String() string {
	return that.Cells()
}

// WinningPlayer - returns the marker that holds a complete line.
// The first marker is checked first.
func (that *Grid) WinningPlayer() (string, bool) {
	if that.moves < minMovesToWin {
		return "", false
	}

	for turn, mask := range that.masks {
		for _, lineMask := range LineMasks {
			if mask&lineMask == lineMask {
				return that.markers[turn], true
			}
		}
	}

	return "", false
}

func (that *Grid) Markers() (string, string) {
	return that.markers[0], that.markers[1]
}

// NextMarker is the marker the next successful play will place.
func (that *Grid) NextMarker() string {
	return that.markers[that.moves%len(that.markers)]
}

// Moves is the number of occupied cells.
func (that *Grid) Moves() int {
	return that.moves
}

// Mask returns the cells held by marker; unknown markers hold nothing.
func (that *Grid) Mask(marker string) uint16 {
	for i, known := range that.markers {
		if known == marker {
			return that.masks[i]
		}
	}

	return 0
}

// OpenMask returns the unoccupied cells.
func (that *Grid) OpenMask() uint16 {
	return fullMask &^ (that.masks[0] | that.masks[1])
}

func (that *Grid) OpenPositions() []Position {
	open := that.OpenMask()

	return lo.Filter(AllPositions, func(pos Position, _ int) bool {
		return open&pos.Mask() != 0
	})
}

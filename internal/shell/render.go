package shell

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	rowSeparator = "---+---+---"
	boardSide    = 3
)

// RenderBoard - lays out a 9 character grid as three rows of three cells.
func RenderBoard(cells string) string {
	runes := []rune(cells)
	if len(runes) != entity.BoardSize {
		return cells
	}

	var sb strings.Builder
	for row := range boardSide {
		if row > 0 {
			sb.WriteString(rowSeparator)
			sb.WriteByte('\n')
		}

		for col := range boardSide {
			if col > 0 {
				sb.WriteByte('|')
			}
			sb.WriteByte(' ')
			sb.WriteRune(runes[row*boardSide+col])
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// RenderIndexes shows which index addresses each cell.
func RenderIndexes() string {
	var sb strings.Builder
	for i := range entity.AllPositions {
		sb.WriteRune(rune('0' + i))
	}

	return RenderBoard(sb.String())
}

package entity

// Line is a winning triple of cells.
type Line [3]Position

// Lines holds the rows, then the columns, then the two diagonals.
var Lines = [8]Line{
	{TopLeft, TopMiddle, TopRight},
	{MiddleLeft, Center, MiddleRight},
	{BottomLeft, BottomMiddle, BottomRight},
	{TopLeft, MiddleLeft, BottomLeft},
	{TopMiddle, Center, BottomMiddle},
	{TopRight, MiddleRight, BottomRight},
	{TopLeft, Center, BottomRight},
	{TopRight, Center, BottomLeft},
}

// LineMasks are the bitmasks of Lines, in the same order.
var LineMasks = func() [len(Lines)]uint16 {
	var masks [len(Lines)]uint16
	for i, line := range Lines {
		masks[i] = line.Mask()
	}
	return masks
}()

func (that Line) Mask() uint16 {
	return that[0].Mask() | that[1].Mask() | that[2].Mask()
}
